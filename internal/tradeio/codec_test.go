// Copyright (c) 2026 rangebar-go Authors

package tradeio_test

import (
	"strings"
	"testing"

	"github.com/eon-labs/rangebar-go/fixedpoint"
	"github.com/eon-labs/rangebar-go/internal/tradeio"
	"github.com/eon-labs/rangebar-go/rangebar"
)

func TestDecodeTrade(t *testing.T) {
	line := []byte(`{"a":12345,"p":"50000.12345","q":"0.01","f":100,"l":100,"T":1700000000000,"m":false}`)
	trade, err := tradeio.DecodeTrade(line)
	if err != nil {
		t.Fatalf("DecodeTrade: %v", err)
	}
	if trade.AggTradeID != 12345 {
		t.Errorf("AggTradeID = %d, want 12345", trade.AggTradeID)
	}
	if trade.Price.Format() != "50000.12345" {
		t.Errorf("Price = %s, want 50000.12345", trade.Price.Format())
	}
	if trade.IsBuyerMaker {
		t.Errorf("IsBuyerMaker = true, want false")
	}
}

func TestDecodeTrade_MissingField(t *testing.T) {
	line := []byte(`{"a":1,"p":"100","q":"1","f":1,"l":1,"T":1}`) // missing "m"
	if _, err := tradeio.DecodeTrade(line); err == nil {
		t.Fatal("expected error for missing field")
	}
}

func TestDecodeTrade_BadPrice(t *testing.T) {
	line := []byte(`{"a":1,"p":"1e10","q":"1","f":1,"l":1,"T":1,"m":false}`)
	if _, err := tradeio.DecodeTrade(line); err == nil {
		t.Fatal("expected error for exponent price")
	}
}

func TestEncodeBar(t *testing.T) {
	bar := rangebar.RangeBar{
		Open: mustParse(t, "100"), High: mustParse(t, "100.8"),
		Low: mustParse(t, "100"), Close: mustParse(t, "100.8"),
		Volume: mustParse(t, "1.5"), Turnover: mustParse(t, "150"),
		BuyVolume: mustParse(t, "1"), BuyTurnover: mustParse(t, "100"),
		OpenTimeMs: 1000, CloseTimeMs: 2000,
		FirstAggID: 1, LastAggID: 4, TradeCount: 4,
	}
	out, err := tradeio.EncodeBar(bar)
	if err != nil {
		t.Fatalf("EncodeBar: %v", err)
	}
	s := string(out)
	for _, want := range []string{`"open":"100"`, `"high":"100.8"`, `"trade_count":4`} {
		if !strings.Contains(s, want) {
			t.Errorf("encoded bar %s missing %s", s, want)
		}
	}
}

func TestScanner(t *testing.T) {
	input := strings.NewReader(
		"{\"a\":1,\"p\":\"100\",\"q\":\"1\",\"f\":1,\"l\":1,\"T\":1000,\"m\":false}\n" +
			"\n" +
			"{\"a\":2,\"p\":\"100.81\",\"q\":\"1\",\"f\":2,\"l\":2,\"T\":1001,\"m\":false}\n",
	)
	scanner := tradeio.NewScanner(input)
	count := 0
	for scanner.Next() {
		count++
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scanner error: %v", err)
	}
	if count != 2 {
		t.Fatalf("scanned %d trades, want 2", count)
	}
}

func mustParse(t *testing.T, s string) fixedpoint.FixedPoint {
	t.Helper()
	v, err := fixedpoint.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return v
}
