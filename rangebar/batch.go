// Copyright (c) 2026 rangebar-go Authors

package rangebar

import "context"

// BatchProcessor drives a RangeBarState over a slice or a stream of
// trades. The batch entry point is a thin driver over the streaming one;
// the transition logic lives only in RangeBarState.
type BatchProcessor struct {
	state *RangeBarState
}

// NewBatchProcessor creates a BatchProcessor for one symbol with the given
// threshold in basis points.
func NewBatchProcessor(thresholdBps uint32) (*BatchProcessor, error) {
	state, err := NewRangeBarState(thresholdBps)
	if err != nil {
		return nil, err
	}
	return &BatchProcessor{state: state}, nil
}

// ProcessTrades ingests every trade in order and flushes the trailing open
// bar, returning the full sequence of bars. Memory is proportional to the
// input and output slices; for bounded memory over very large inputs use
// ProcessStream instead.
func (p *BatchProcessor) ProcessTrades(trades []TradeRecord) ([]RangeBar, error) {
	out := make([]RangeBar, 0, len(trades)/4+1)
	sink := func(bar RangeBar) error {
		out = append(out, bar)
		return nil
	}
	if err := p.ProcessStream(context.Background(), NewSliceTradeScanner(trades), false, sink); err != nil {
		return nil, err
	}
	return out, nil
}

// TradeScanner is a pull-based source of trades, modeled on the teacher's
// scan-then-decode readers: Next advances to the next trade and reports
// whether one is available; Trade returns the current trade; Err reports
// any error that stopped iteration (nil at a clean end of input).
type TradeScanner interface {
	Next() bool
	Trade() TradeRecord
	Err() error
}

// SliceTradeScanner adapts a []TradeRecord to the TradeScanner interface,
// for callers that already have trades in memory but want to exercise the
// streaming path (e.g. to verify batch/stream equivalence).
type SliceTradeScanner struct {
	trades []TradeRecord
	index  int
}

// NewSliceTradeScanner wraps trades as a TradeScanner.
func NewSliceTradeScanner(trades []TradeRecord) *SliceTradeScanner {
	return &SliceTradeScanner{trades: trades, index: -1}
}

func (s *SliceTradeScanner) Next() bool {
	s.index++
	return s.index < len(s.trades)
}

func (s *SliceTradeScanner) Trade() TradeRecord {
	return s.trades[s.index]
}

func (s *SliceTradeScanner) Err() error {
	return nil
}

// ProcessStream drives the state machine one trade at a time from scanner,
// forwarding each completed bar to sink as soon as it closes, without ever
// materializing the full bar sequence — memory stays O(1) in trade count;
// only the current partial bar is resident. If sink blocks, ingestion
// pauses with it: no bars are dropped.
//
// ctx is polled at each trade boundary for cooperative cancellation. On
// cancellation, ProcessStream returns ErrCancelled; if flushOnCancel is
// true the currently-open bar is flushed to sink first.
func (p *BatchProcessor) ProcessStream(ctx context.Context, scanner TradeScanner, flushOnCancel bool, sink func(RangeBar) error) error {
	pending := make([]RangeBar, 0, 1)
	for scanner.Next() {
		select {
		case <-ctx.Done():
			if flushOnCancel {
				pending = pending[:0]
				p.state.Flush(&pending)
				for _, bar := range pending {
					if err := sink(bar); err != nil {
						return err
					}
				}
			}
			return ErrCancelled
		default:
		}

		pending = pending[:0]
		if err := p.state.Ingest(scanner.Trade(), &pending); err != nil {
			return err
		}
		for _, bar := range pending {
			if err := sink(bar); err != nil {
				return err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	pending = pending[:0]
	p.state.Flush(&pending)
	for _, bar := range pending {
		if err := sink(bar); err != nil {
			return err
		}
	}
	return nil
}
