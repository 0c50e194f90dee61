// Copyright (c) 2026 rangebar-go Authors

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eon-labs/rangebar-go/fixedpoint"
	"github.com/eon-labs/rangebar-go/rangebar"
)

///////////////////////////////////////////////////////////////////////////////

var (
	thresholdBps uint32
	forceZstd    bool

	sinceArg string
	untilArg string
	dateArg  string

	outputFile string
)

// Exit codes, one per error kind per spec.md section 7. exitGeneric covers
// everything outside the classified sentinel set (I/O errors, cobra usage
// errors, and the like).
const (
	exitGeneric          = 1
	exitParseError       = 2
	exitOverflow         = 3
	exitInvalidTrade     = 4
	exitInvalidThreshold = 5
	exitCancelled        = 6
)

// classifyExitCode maps err to the distinct exit code for its kind. Order
// matters only in that ErrOverflow is checked ahead of the other fixedpoint
// parse sentinels since it is arithmetic rather than lexical.
func classifyExitCode(err error) int {
	switch {
	case errors.Is(err, rangebar.ErrCancelled):
		return exitCancelled
	case errors.Is(err, rangebar.ErrInvalidThreshold):
		return exitInvalidThreshold
	case errors.Is(err, rangebar.ErrInvalidTrade):
		return exitInvalidTrade
	case errors.Is(err, fixedpoint.ErrOverflow):
		return exitOverflow
	case errors.Is(err, fixedpoint.ErrEmptyInput),
		errors.Is(err, fixedpoint.ErrIllegalCharacter),
		errors.Is(err, fixedpoint.ErrTooManyFractionalDigits):
		return exitParseError
	default:
		return exitGeneric
	}
}

func requireNoError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
		os.Exit(classifyExitCode(err))
	}
}

///////////////////////////////////////////////////////////////////////////////

var rootCmd = &cobra.Command{
	Use:   "rangebarctl",
	Short: "rangebarctl builds range bars from aggregated-trade logs",
	Long:  "rangebarctl builds range bars from aggregated-trade logs",
}

func main() {
	cobra.OnInitialize()

	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().Uint32VarP(&thresholdBps, "threshold-bps", "t", 80, "Range-bar threshold, in basis points of the opening price")
	buildCmd.Flags().BoolVarP(&forceZstd, "zstd", "z", false, "Input is zstd-compressed (useful for stdin)")
	buildCmd.Flags().StringVar(&sinceArg, "since", "", "Discard trades before this ISO 8601 timestamp")
	buildCmd.Flags().StringVar(&untilArg, "until", "", "Discard trades at or after this ISO 8601 timestamp")
	buildCmd.Flags().StringVar(&dateArg, "date", "", "Discard trades outside this UTC calendar date (YYYYMMDD)")
	buildCmd.Flags().StringVarP(&outputFile, "output", "o", "-", "Destination for the resulting bars (\"-\" for stdout)")

	rootCmd.AddCommand(streamCmd)
	streamCmd.Flags().Uint32VarP(&thresholdBps, "threshold-bps", "t", 80, "Range-bar threshold, in basis points of the opening price")
	streamCmd.Flags().BoolVarP(&forceZstd, "zstd", "z", false, "Input is zstd-compressed (useful for stdin)")

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
