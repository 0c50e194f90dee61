// Copyright (c) 2026 rangebar-go Authors

package rangebar

// SymbolSet holds one independent RangeBarState per symbol: no RangeBarState
// is ever touched for more than one symbol. That does not make SymbolSet
// itself concurrency-safe — states is a plain map, and the lazy-create in
// Ingest writes to it. A caller that shards trades by symbol across worker
// goroutines must give each worker its own SymbolSet; sharing one SymbolSet
// across goroutines, even touching disjoint symbols, is a data race on the
// map and must be guarded by the caller if it's ever done.
type SymbolSet struct {
	thresholdBps uint32
	states       map[string]*RangeBarState
}

// NewSymbolSet creates a SymbolSet where every symbol's RangeBarState uses
// the same threshold.
func NewSymbolSet(thresholdBps uint32) (*SymbolSet, error) {
	if err := validateThreshold(thresholdBps); err != nil {
		return nil, err
	}
	return &SymbolSet{
		thresholdBps: thresholdBps,
		states:       make(map[string]*RangeBarState),
	}, nil
}

// Ingest routes a trade to the named symbol's RangeBarState, creating it on
// first use.
func (ss *SymbolSet) Ingest(symbol string, t TradeRecord, out *[]RangeBar) error {
	state, ok := ss.states[symbol]
	if !ok {
		var err error
		state, err = NewRangeBarState(ss.thresholdBps)
		if err != nil {
			return err
		}
		ss.states[symbol] = state
	}
	return state.Ingest(t, out)
}

// FlushAll flushes every symbol's open bar, in map iteration order (the
// caller should sort by symbol first if a stable order matters).
func (ss *SymbolSet) FlushAll(out *[]RangeBar) {
	for _, state := range ss.states {
		state.Flush(out)
	}
}

// State returns the RangeBarState for a symbol, or nil if none exists yet.
func (ss *SymbolSet) State(symbol string) *RangeBarState {
	return ss.states[symbol]
}
