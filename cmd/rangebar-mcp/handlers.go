// Copyright (c) 2026 rangebar-go Authors

package main

import (
	"bufio"
	"context"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/segmentio/encoding/json"

	"github.com/eon-labs/rangebar-go/internal/tradeio"
	"github.com/eon-labs/rangebar-go/rangebar"
)

///////////////////////////////////////////////////////////////////////////////

func buildRangeBarsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tradesText, err := request.RequireString("trades")
	if err != nil {
		return mcp.NewToolResultError("trades must be set"), nil
	}
	thresholdBpsStr, err := request.RequireString("threshold_bps")
	if err != nil {
		return mcp.NewToolResultError("threshold_bps must be set"), nil
	}
	thresholdBps64, err := strconv.ParseUint(thresholdBpsStr, 10, 32)
	if err != nil {
		return mcp.NewToolResultErrorf("threshold_bps must be an integer: %s", err), nil
	}

	processor, err := rangebar.NewBatchProcessor(uint32(thresholdBps64))
	if err != nil {
		return mcp.NewToolResultErrorf("invalid threshold_bps: %s", err), nil
	}

	var trades []rangebar.TradeRecord
	lineScanner := bufio.NewScanner(strings.NewReader(tradesText))
	for lineScanner.Scan() {
		line := strings.TrimSpace(lineScanner.Text())
		if line == "" {
			continue
		}
		trade, err := tradeio.DecodeTrade([]byte(line))
		if err != nil {
			return mcp.NewToolResultErrorf("failed to decode trade: %s", err), nil
		}
		trades = append(trades, trade)
	}
	if err := lineScanner.Err(); err != nil {
		return mcp.NewToolResultErrorf("failed to read trades: %s", err), nil
	}

	bars, err := processor.ProcessTrades(trades)
	if err != nil {
		return mcp.NewToolResultErrorf("failed to build bars: %s", err), nil
	}

	var out strings.Builder
	for _, bar := range bars {
		encoded, err := tradeio.EncodeBar(bar)
		if err != nil {
			return mcp.NewToolResultErrorf("failed to encode bar: %s", err), nil
		}
		out.Write(encoded)
		out.WriteByte('\n')
	}

	logger.Info("build_range_bars", "trades", len(trades), "bars", len(bars))
	return mcp.NewToolResultText(out.String()), nil
}

func summarizeBarsHandler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	barsText, err := request.RequireString("bars")
	if err != nil {
		return mcp.NewToolResultError("bars must be set"), nil
	}

	var bars []rangebar.RangeBar
	lineScanner := bufio.NewScanner(strings.NewReader(barsText))
	for lineScanner.Scan() {
		line := strings.TrimSpace(lineScanner.Text())
		if line == "" {
			continue
		}
		bar, err := tradeio.DecodeBar([]byte(line))
		if err != nil {
			return mcp.NewToolResultErrorf("failed to decode bar: %s", err), nil
		}
		bars = append(bars, bar)
	}
	if err := lineScanner.Err(); err != nil {
		return mcp.NewToolResultErrorf("failed to read bars: %s", err), nil
	}

	stats, err := rangebar.Summarize(bars)
	if err != nil {
		return mcp.NewToolResultErrorf("failed to summarize bars: %s", err), nil
	}

	summary := struct {
		BarCount      int    `json:"bar_count"`
		TradeCount    uint64 `json:"trade_count"`
		TotalVolume   string `json:"total_volume"`
		TotalTurnover string `json:"total_turnover"`
		FirstOpenMs   int64  `json:"first_open_ms"`
		LastCloseMs   int64  `json:"last_close_ms"`
	}{
		BarCount:      stats.BarCount,
		TradeCount:    stats.TradeCount,
		TotalVolume:   stats.TotalVolume.Format(),
		TotalTurnover: stats.TotalTurnover.Format(),
		FirstOpenMs:   stats.FirstOpenMs,
		LastCloseMs:   stats.LastCloseMs,
	}

	jbytes, err := json.Marshal(summary)
	if err != nil {
		return mcp.NewToolResultErrorf("failed to marshal summary: %s", err), nil
	}

	logger.Info("summarize_bars", "bars", len(bars))
	return mcp.NewToolResultText(string(jbytes)), nil
}
