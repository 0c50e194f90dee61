// Copyright (c) 2026 rangebar-go Authors

package rangebar

import "fmt"

var (
	// ErrInvalidTrade is returned by RangeBarState.Ingest when a trade's
	// timestamp precedes the open bar's open time, or its agg_trade_id does
	// not strictly increase relative to the open bar's last trade.
	ErrInvalidTrade = fmt.Errorf("rangebar: invalid trade")
	// ErrInvalidThreshold is returned when a threshold in basis points is
	// outside [1, 10_000].
	ErrInvalidThreshold = fmt.Errorf("rangebar: invalid threshold")
	// ErrCancelled is returned by ProcessStream when the caller-provided
	// cancellation signal fires between trades.
	ErrCancelled = fmt.Errorf("rangebar: cancelled")
)

// MinThresholdBps and MaxThresholdBps bound the legal threshold range:
// 1 bps (0.01%) to 10,000 bps (100%).
const (
	MinThresholdBps uint32 = 1
	MaxThresholdBps uint32 = 10_000
)

func validateThreshold(bps uint32) error {
	if bps < MinThresholdBps || bps > MaxThresholdBps {
		return fmt.Errorf("rangebar: threshold_bps %d outside [%d, %d]: %w", bps, MinThresholdBps, MaxThresholdBps, ErrInvalidThreshold)
	}
	return nil
}
