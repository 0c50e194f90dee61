// Copyright (c) 2026 rangebar-go Authors

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/neomantra/ymdflag"
	"github.com/relvacode/iso8601"
	"github.com/spf13/cobra"

	"github.com/eon-labs/rangebar-go/internal/tradeio"
	"github.com/eon-labs/rangebar-go/rangebar"
)

///////////////////////////////////////////////////////////////////////////////

var buildCmd = &cobra.Command{
	Use:   "build file...",
	Short: "Builds range bars from one or more aggregated-trade logs",
	Long:  "Builds range bars from one or more aggregated-trade logs, in bounded memory regardless of input size",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		filter, err := newTimeFilter(sinceArg, untilArg, dateArg)
		requireNoError(err)

		out, closeOut, err := tradeio.OpenWriter(outputFile, false)
		requireNoError(err)
		defer closeOut()

		var totalBars, totalTrades uint64
		for _, sourceFile := range args {
			barCount, tradeCount, err := buildOneFile(sourceFile, filter, out)
			if err != nil {
				fmt.Fprintf(os.Stderr, "error: building %s: %s\n", sourceFile, err.Error())
				os.Exit(classifyExitCode(err))
			}
			totalBars += barCount
			totalTrades += tradeCount
		}

		fmt.Fprintf(os.Stderr, "wrote %s bars from %s trades\n",
			humanize.Comma(int64(totalBars)), humanize.Comma(int64(totalTrades)))
	},
}

func buildOneFile(sourceFile string, filter timeFilter, out io.Writer) (barCount, tradeCount uint64, err error) {
	reader, closer, err := tradeio.OpenReader(sourceFile, forceZstd)
	if err != nil {
		return 0, 0, fmt.Errorf("open: %w", err)
	}
	defer closer.Close()

	processor, err := rangebar.NewBatchProcessor(thresholdBps)
	if err != nil {
		return 0, 0, fmt.Errorf("configure processor: %w", err)
	}

	scanner := &filteredScanner{inner: tradeio.NewScanner(reader), filter: filter}
	sink := func(bar rangebar.RangeBar) error {
		barCount++
		tradeCount += bar.TradeCount
		encoded, err := tradeio.EncodeBar(bar)
		if err != nil {
			return err
		}
		_, werr := out.Write(append(encoded, '\n'))
		return werr
	}

	if err := processor.ProcessStream(context.Background(), scanner, false, sink); err != nil {
		return barCount, tradeCount, fmt.Errorf("process: %w", err)
	}
	return barCount, tradeCount, nil
}

///////////////////////////////////////////////////////////////////////////////

// timeFilter discards trades outside a [since, until) window or outside a
// single UTC calendar date.
type timeFilter struct {
	hasWindow bool
	since     int64 // inclusive, ms
	until     int64 // exclusive, ms

	hasDate bool
	dateYMD uint32
}

func newTimeFilter(sinceArg, untilArg, dateArg string) (timeFilter, error) {
	var f timeFilter
	f.until = int64(1) << 62
	if sinceArg != "" {
		t, err := iso8601.ParseString(sinceArg)
		if err != nil {
			return f, fmt.Errorf("parse --since: %w", err)
		}
		f.since = t.UnixMilli()
		f.hasWindow = true
	}
	if untilArg != "" {
		t, err := iso8601.ParseString(untilArg)
		if err != nil {
			return f, fmt.Errorf("parse --until: %w", err)
		}
		f.until = t.UnixMilli()
		f.hasWindow = true
	}
	if dateArg != "" {
		ymd, err := strconv.ParseUint(dateArg, 10, 32)
		if err != nil {
			return f, fmt.Errorf("parse --date as YYYYMMDD: %w", err)
		}
		f.dateYMD = uint32(ymd)
		f.hasDate = true
	}
	return f, nil
}

func (f timeFilter) accepts(timestampMs int64) bool {
	if f.hasWindow && (timestampMs < f.since || timestampMs >= f.until) {
		return false
	}
	if f.hasDate {
		t := time.UnixMilli(timestampMs).UTC()
		if uint32(ymdflag.TimeToYMD(t)) != f.dateYMD {
			return false
		}
	}
	return true
}

// filteredScanner adapts a rangebar.TradeScanner, skipping trades a
// timeFilter rejects, while preserving the ordering of what passes through.
type filteredScanner struct {
	inner  rangebar.TradeScanner
	filter timeFilter
}

func (s *filteredScanner) Next() bool {
	for s.inner.Next() {
		if s.filter.accepts(s.inner.Trade().TimestampMs) {
			return true
		}
	}
	return false
}

func (s *filteredScanner) Trade() rangebar.TradeRecord { return s.inner.Trade() }
func (s *filteredScanner) Err() error                  { return s.inner.Err() }
