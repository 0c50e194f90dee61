// Copyright (c) 2026 rangebar-go Authors

package tradeio

import (
	"bufio"
	"io"

	"github.com/eon-labs/rangebar-go/rangebar"
)

// Scanner reads JSON-lines aggregated-trade records from an io.Reader and
// implements rangebar.TradeScanner, so it can drive
// rangebar.BatchProcessor.ProcessStream directly. It decodes lazily, one
// line at a time, keeping memory bounded regardless of input size.
type Scanner struct {
	scanner *bufio.Scanner
	current rangebar.TradeRecord
	err     error
}

// NewScanner wraps r as a trade Scanner.
func NewScanner(r io.Reader) *Scanner {
	bs := bufio.NewScanner(r)
	bs.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Scanner{scanner: bs}
}

// Next advances to the next trade, skipping blank lines. It returns false
// at end of input or on a decode error; check Err to distinguish the two.
func (s *Scanner) Next() bool {
	for s.scanner.Scan() {
		line := s.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		trade, err := DecodeTrade(line)
		if err != nil {
			s.err = err
			return false
		}
		s.current = trade
		return true
	}
	s.err = s.scanner.Err()
	return false
}

// Trade returns the trade decoded by the most recent successful Next call.
func (s *Scanner) Trade() rangebar.TradeRecord {
	return s.current
}

// Err returns the error that stopped iteration, or nil at a clean end of
// input.
func (s *Scanner) Err() error {
	return s.err
}
