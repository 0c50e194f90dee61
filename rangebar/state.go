// Copyright (c) 2026 rangebar-go Authors

package rangebar

import (
	"fmt"

	"github.com/eon-labs/rangebar-go/fixedpoint"
)

// RangeBarState is a per-symbol state machine: it ingests one trade at a
// time and, at most, emits one completed bar per trade. It is not safe for
// concurrent mutation — callers parallelize across symbols, each with its
// own RangeBarState, never across trades of the same symbol.
type RangeBarState struct {
	thresholdBps uint32

	open       bool
	bar        RangeBar
	upperBound fixedpoint.FixedPoint
	lowerBound fixedpoint.FixedPoint
}

// NewRangeBarState creates a state machine for one symbol with a fixed
// threshold in basis points (theta = bps/10_000). bps must be in
// [MinThresholdBps, MaxThresholdBps].
func NewRangeBarState(thresholdBps uint32) (*RangeBarState, error) {
	if err := validateThreshold(thresholdBps); err != nil {
		return nil, err
	}
	return &RangeBarState{thresholdBps: thresholdBps}, nil
}

// IsOpen reports whether a bar is currently in progress.
func (s *RangeBarState) IsOpen() bool {
	return s.open
}

// Bounds returns the currently-open bar's breach band, both computed once
// from its open price. The second return value is false when no bar is
// open.
func (s *RangeBarState) Bounds() (lower, upper fixedpoint.FixedPoint, ok bool) {
	if !s.open {
		return fixedpoint.Zero, fixedpoint.Zero, false
	}
	return s.lowerBound, s.upperBound, true
}

// Ingest folds one trade into the state machine. At most one completed bar
// is appended to out by a single call — when the trade breaches the band,
// closing the open bar. The breaching trade is never used to open the next
// bar; the following Ingest call does that.
//
// Equality at either bound is not a breach; the band is closed only on
// strict inequality. A breach includes the breaching trade in the closing
// bar and does not simultaneously open the next bar — the next call opens
// it.
func (s *RangeBarState) Ingest(t TradeRecord, out *[]RangeBar) error {
	if !s.open {
		bar, err := newBarFromTrade(t)
		if err != nil {
			return err
		}
		upper, lower, err := thresholdBounds(t.Price, s.thresholdBps)
		if err != nil {
			return err
		}
		s.bar = bar
		s.upperBound = upper
		s.lowerBound = lower
		s.open = true
		return nil
	}

	if t.TimestampMs < s.bar.OpenTimeMs {
		return fmt.Errorf("rangebar: trade timestamp %d precedes open bar's open time %d: %w", t.TimestampMs, s.bar.OpenTimeMs, ErrInvalidTrade)
	}
	if t.AggTradeID <= s.bar.LastAggID {
		return fmt.Errorf("rangebar: trade agg_trade_id %d does not exceed open bar's last agg_trade_id %d: %w", t.AggTradeID, s.bar.LastAggID, ErrInvalidTrade)
	}

	if err := s.bar.accumulate(t); err != nil {
		return err
	}

	breach := t.Price.Cmp(s.upperBound) > 0 || t.Price.Cmp(s.lowerBound) < 0
	if breach {
		*out = append(*out, s.bar)
		s.bar = RangeBar{}
		s.open = false
	}
	return nil
}

// Flush emits the currently-open bar as-is, if any, and resets to the
// empty state. Always legal, including after an error from Ingest left the
// state in an unspecified-but-safe condition — callers that hit an error
// are expected to discard the state rather than rely on Flush to recover
// it, but Flush itself never fails.
func (s *RangeBarState) Flush(out *[]RangeBar) {
	if !s.open {
		return
	}
	*out = append(*out, s.bar)
	s.bar = RangeBar{}
	s.open = false
}

// thresholdBounds computes the breach band from an open price, once, per
// the non-lookahead invariant: no later trade ever recomputes it.
func thresholdBounds(open fixedpoint.FixedPoint, thresholdBps uint32) (upper, lower fixedpoint.FixedPoint, err error) {
	delta, err := open.MulByBps(thresholdBps)
	if err != nil {
		return fixedpoint.Zero, fixedpoint.Zero, err
	}
	upper, err = open.Add(delta)
	if err != nil {
		return fixedpoint.Zero, fixedpoint.Zero, err
	}
	lower, err = open.Sub(delta)
	if err != nil {
		return fixedpoint.Zero, fixedpoint.Zero, err
	}
	return upper, lower, nil
}
