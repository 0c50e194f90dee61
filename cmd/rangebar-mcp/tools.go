// Copyright (c) 2026 rangebar-go Authors

package main

import (
	mcp_server "github.com/mark3labs/mcp-go/server"

	"github.com/mark3labs/mcp-go/mcp"
)

///////////////////////////////////////////////////////////////////////////////

func registerTools(mcpServer *mcp_server.MCPServer) {
	mcpServer.AddTool(
		mcp.NewTool("build_range_bars",
			mcp.WithDescription("Builds range bars from a newline-delimited JSON log of aggregated trades. Each line must be an object with fields a (agg_trade_id), p (price string), q (quantity string), f (first_trade_id), l (last_trade_id), T (timestamp_ms), m (is_buyer_maker). Returns one JSON bar object per line."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithString("trades",
				mcp.Required(),
				mcp.Description("Newline-delimited JSON aggregated-trade records, ordered by increasing agg_trade_id"),
			),
			mcp.WithString("threshold_bps",
				mcp.Required(),
				mcp.Description("Range-bar threshold in basis points of the opening price, between 1 and 10000"),
			),
		),
		buildRangeBarsHandler,
	)

	mcpServer.AddTool(
		mcp.NewTool("summarize_bars",
			mcp.WithDescription("Summarizes a newline-delimited JSON log of range bars (as produced by build_range_bars): total bar count, trade count, volume and turnover."),
			mcp.WithReadOnlyHintAnnotation(true),
			mcp.WithDestructiveHintAnnotation(false),
			mcp.WithIdempotentHintAnnotation(true),
			mcp.WithString("bars",
				mcp.Required(),
				mcp.Description("Newline-delimited JSON bar records, as returned by build_range_bars"),
			),
		),
		summarizeBarsHandler,
	)
}
