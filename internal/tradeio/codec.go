// Copyright (c) 2026 rangebar-go Authors
//
// Trade and bar wire codecs: JSON-lines aggregated-trade records in, the
// spec's conventional decimal-string bar records out. Grounded in the
// teacher's json_scanner.go, which uses a valyala/fastjson scan-ahead pass
// before a typed decode.

package tradeio

import (
	"fmt"

	"github.com/segmentio/encoding/json"
	"github.com/valyala/fastjson"

	"github.com/eon-labs/rangebar-go/fixedpoint"
	"github.com/eon-labs/rangebar-go/rangebar"
)

// wireTrade is the on-the-wire shape of one aggregated trade, field-named
// after the exchange convention the spec's GLOSSARY describes.
type wireTrade struct {
	AggTradeID   int64  `json:"a"`
	Price        string `json:"p"`
	Quantity     string `json:"q"`
	FirstTradeID int64  `json:"f"`
	LastTradeID  int64  `json:"l"`
	TimestampMs  int64  `json:"T"`
	IsBuyerMaker bool   `json:"m"`
}

// wireBar is the on-the-wire shape of one completed RangeBar: decimal
// strings for prices/volumes, milliseconds since epoch for timestamps, per
// spec section 6's output bar contract.
type wireBar struct {
	Open        string `json:"open"`
	High        string `json:"high"`
	Low         string `json:"low"`
	Close       string `json:"close"`
	Volume      string `json:"volume"`
	Turnover    string `json:"turnover"`
	BuyVolume   string `json:"buy_volume"`
	BuyTurnover string `json:"buy_turnover"`
	OpenTimeMs  int64  `json:"open_time_ms"`
	CloseTimeMs int64  `json:"close_time_ms"`
	FirstAggID  int64  `json:"first_agg_id"`
	LastAggID   int64  `json:"last_agg_id"`
	TradeCount  uint64 `json:"trade_count"`
}

var requiredTradeFields = []string{"a", "p", "q", "f", "l", "T", "m"}

// DecodeTrade parses one JSON-lines trade record. It first scans the raw
// bytes with fastjson to validate the expected fields are present (cheaper
// than a failed typed unmarshal on malformed input), then decodes through
// segmentio/encoding/json and converts price/quantity strings through
// fixedpoint.Parse.
func DecodeTrade(line []byte) (rangebar.TradeRecord, error) {
	var p fastjson.Parser
	val, err := p.ParseBytes(line)
	if err != nil {
		return rangebar.TradeRecord{}, fmt.Errorf("tradeio: parse trade JSON: %w", err)
	}
	for _, field := range requiredTradeFields {
		if val.Get(field) == nil {
			return rangebar.TradeRecord{}, fmt.Errorf("tradeio: trade record missing field %q", field)
		}
	}

	var wt wireTrade
	if err := json.Unmarshal(line, &wt); err != nil {
		return rangebar.TradeRecord{}, fmt.Errorf("tradeio: decode trade: %w", err)
	}

	price, err := fixedpoint.Parse(wt.Price)
	if err != nil {
		return rangebar.TradeRecord{}, fmt.Errorf("tradeio: trade %d price: %w", wt.AggTradeID, err)
	}
	volume, err := fixedpoint.Parse(wt.Quantity)
	if err != nil {
		return rangebar.TradeRecord{}, fmt.Errorf("tradeio: trade %d volume: %w", wt.AggTradeID, err)
	}

	return rangebar.TradeRecord{
		AggTradeID:   wt.AggTradeID,
		Price:        price,
		Volume:       volume,
		FirstTradeID: wt.FirstTradeID,
		LastTradeID:  wt.LastTradeID,
		TimestampMs:  wt.TimestampMs,
		IsBuyerMaker: wt.IsBuyerMaker,
	}, nil
}

// EncodeBar renders a completed bar in the spec's conventional wire shape.
func EncodeBar(b rangebar.RangeBar) ([]byte, error) {
	wb := wireBar{
		Open:        b.Open.Format(),
		High:        b.High.Format(),
		Low:         b.Low.Format(),
		Close:       b.Close.Format(),
		Volume:      b.Volume.Format(),
		Turnover:    b.Turnover.Format(),
		BuyVolume:   b.BuyVolume.Format(),
		BuyTurnover: b.BuyTurnover.Format(),
		OpenTimeMs:  b.OpenTimeMs,
		CloseTimeMs: b.CloseTimeMs,
		FirstAggID:  b.FirstAggID,
		LastAggID:   b.LastAggID,
		TradeCount:  b.TradeCount,
	}
	out, err := json.Marshal(wb)
	if err != nil {
		return nil, fmt.Errorf("tradeio: encode bar: %w", err)
	}
	return out, nil
}

// DecodeBar parses one line produced by EncodeBar back into a RangeBar, for
// callers (such as summarize_bars) that consume bars rather than trades.
func DecodeBar(line []byte) (rangebar.RangeBar, error) {
	var wb wireBar
	if err := json.Unmarshal(line, &wb); err != nil {
		return rangebar.RangeBar{}, fmt.Errorf("tradeio: decode bar: %w", err)
	}

	fields := []struct {
		name string
		text string
	}{
		{"open", wb.Open}, {"high", wb.High}, {"low", wb.Low}, {"close", wb.Close},
		{"volume", wb.Volume}, {"turnover", wb.Turnover},
		{"buy_volume", wb.BuyVolume}, {"buy_turnover", wb.BuyTurnover},
	}
	parsed := make(map[string]fixedpoint.FixedPoint, len(fields))
	for _, f := range fields {
		v, err := fixedpoint.Parse(f.text)
		if err != nil {
			return rangebar.RangeBar{}, fmt.Errorf("tradeio: bar %s: %w", f.name, err)
		}
		parsed[f.name] = v
	}

	return rangebar.RangeBar{
		Open: parsed["open"], High: parsed["high"], Low: parsed["low"], Close: parsed["close"],
		Volume: parsed["volume"], Turnover: parsed["turnover"],
		BuyVolume: parsed["buy_volume"], BuyTurnover: parsed["buy_turnover"],
		OpenTimeMs: wb.OpenTimeMs, CloseTimeMs: wb.CloseTimeMs,
		FirstAggID: wb.FirstAggID, LastAggID: wb.LastAggID,
		TradeCount: wb.TradeCount,
	}, nil
}
