// Copyright (c) 2026 rangebar-go Authors

package rangebar

import "github.com/eon-labs/rangebar-go/fixedpoint"

// TradeRecord is an immutable aggregated trade: one exchange-side rollup of
// one or more matched orders at a single price in a single instant. The
// core borrows TradeRecords read-only; it never mutates or retains them
// beyond a single Ingest call.
type TradeRecord struct {
	AggTradeID   int64
	Price        fixedpoint.FixedPoint
	Volume       fixedpoint.FixedPoint
	FirstTradeID int64
	LastTradeID  int64
	TimestampMs  int64
	IsBuyerMaker bool
}
