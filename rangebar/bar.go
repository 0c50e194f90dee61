// Copyright (c) 2026 rangebar-go Authors

package rangebar

import "github.com/eon-labs/rangebar-go/fixedpoint"

// RangeBar is an OHLCV-style summary whose lifetime is bounded by a fixed
// price threshold around its opening price. It is mutated in place while
// open and becomes an immutable record once emitted.
type RangeBar struct {
	Open, High, Low, Close                  fixedpoint.FixedPoint
	Volume, Turnover, BuyVolume, BuyTurnover fixedpoint.FixedPoint
	OpenTimeMs, CloseTimeMs                  int64
	FirstAggID, LastAggID                    int64
	TradeCount                               uint64
}

// newBarFromTrade starts a bar from the first trade of a new band.
func newBarFromTrade(t TradeRecord) (RangeBar, error) {
	turnover, err := mulPriceVolume(t.Price, t.Volume)
	if err != nil {
		return RangeBar{}, err
	}

	buyVolume := fixedpoint.Zero
	buyTurnover := fixedpoint.Zero
	if !t.IsBuyerMaker {
		buyVolume = t.Volume
		buyTurnover = turnover
	}

	return RangeBar{
		Open:         t.Price,
		High:         t.Price,
		Low:          t.Price,
		Close:        t.Price,
		Volume:       t.Volume,
		Turnover:     turnover,
		BuyVolume:    buyVolume,
		BuyTurnover:  buyTurnover,
		OpenTimeMs:   t.TimestampMs,
		CloseTimeMs:  t.TimestampMs,
		FirstAggID:   t.AggTradeID,
		LastAggID:    t.AggTradeID,
		TradeCount:   1,
	}, nil
}

// accumulate folds one more trade into an already-open bar, in place. It
// does not decide whether the trade breaches the band; callers apply that
// decision before or after calling accumulate, per the close-only-on-breach
// rule in RangeBarState.Ingest.
func (b *RangeBar) accumulate(t TradeRecord) error {
	turnover, err := mulPriceVolume(t.Price, t.Volume)
	if err != nil {
		return err
	}

	b.High = fixedpoint.Max(b.High, t.Price)
	b.Low = fixedpoint.Min(b.Low, t.Price)
	b.Close = t.Price

	if b.Volume, err = b.Volume.Add(t.Volume); err != nil {
		return err
	}
	if b.Turnover, err = b.Turnover.Add(turnover); err != nil {
		return err
	}
	if !t.IsBuyerMaker {
		if b.BuyVolume, err = b.BuyVolume.Add(t.Volume); err != nil {
			return err
		}
		if b.BuyTurnover, err = b.BuyTurnover.Add(turnover); err != nil {
			return err
		}
	}

	b.CloseTimeMs = t.TimestampMs
	b.LastAggID = t.AggTradeID
	b.TradeCount++
	return nil
}

// mulPriceVolume computes turnover = price*volume via FixedPoint's
// 128-bit-intermediate multiply, truncating toward zero back to Scale-1e8.
func mulPriceVolume(price, volume fixedpoint.FixedPoint) (fixedpoint.FixedPoint, error) {
	return price.MulTrunc(volume)
}
