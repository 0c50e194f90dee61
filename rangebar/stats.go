// Copyright (c) 2026 rangebar-go Authors

package rangebar

import "github.com/eon-labs/rangebar-go/fixedpoint"

// Stats summarizes a completed sequence of bars for reporting purposes. It
// is read-only: it never mutates the bars it summarizes.
type Stats struct {
	BarCount      int
	TradeCount    uint64
	TotalVolume   fixedpoint.FixedPoint
	TotalTurnover fixedpoint.FixedPoint
	FirstOpenMs   int64
	LastCloseMs   int64
}

// Summarize computes Stats over bars. It returns an error only if an
// intermediate volume or turnover sum overflows 64 bits.
func Summarize(bars []RangeBar) (Stats, error) {
	var s Stats
	s.TotalVolume = fixedpoint.Zero
	s.TotalTurnover = fixedpoint.Zero
	for i, b := range bars {
		var err error
		if s.TotalVolume, err = s.TotalVolume.Add(b.Volume); err != nil {
			return Stats{}, err
		}
		if s.TotalTurnover, err = s.TotalTurnover.Add(b.Turnover); err != nil {
			return Stats{}, err
		}
		s.TradeCount += b.TradeCount
		if i == 0 {
			s.FirstOpenMs = b.OpenTimeMs
		}
		s.LastCloseMs = b.CloseTimeMs
	}
	s.BarCount = len(bars)
	return s, nil
}
