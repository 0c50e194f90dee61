// Copyright (c) 2026 rangebar-go Authors

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/eon-labs/rangebar-go/internal/tradeio"
	"github.com/eon-labs/rangebar-go/rangebar"
)

///////////////////////////////////////////////////////////////////////////////

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Streams range bars from stdin, one trade at a time, until end of input or interruption",
	Long: `Streams range bars from stdin, one trade at a time, until end of input or interruption.
Reads JSON-lines aggregated-trade records from stdin and writes completed
bars to stdout as soon as they close. SIGINT/SIGTERM triggers cooperative
cancellation: the in-flight bar is flushed before rangebarctl exits.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		processor, err := rangebar.NewBatchProcessor(thresholdBps)
		requireNoError(err)

		reader, closer, err := tradeio.OpenReader("-", forceZstd)
		requireNoError(err)
		defer closer.Close()

		scanner := tradeio.NewScanner(reader)
		var barCount uint64
		sink := func(bar rangebar.RangeBar) error {
			barCount++
			encoded, err := tradeio.EncodeBar(bar)
			if err != nil {
				return err
			}
			_, werr := fmt.Fprintf(os.Stdout, "%s\n", encoded)
			return werr
		}

		err = processor.ProcessStream(ctx, scanner, true, sink)
		if err != nil {
			fmt.Fprintf(os.Stderr, "stream ended after %s bars: %s\n", humanize.Comma(int64(barCount)), err.Error())
			os.Exit(classifyExitCode(err))
		}
		fmt.Fprintf(os.Stderr, "stream ended after %s bars\n", humanize.Comma(int64(barCount)))
	},
}
