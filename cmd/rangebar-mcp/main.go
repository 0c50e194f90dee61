// Copyright (c) 2026 rangebar-go Authors
//
// This is a Model Context Protocol (MCP) server exposing range-bar
// construction as a tool, so an LLM can turn a pasted trade log into bars
// without shelling out to rangebarctl.

package main

import (
	"fmt"
	"log/slog"
	"os"

	mcp_server "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/pflag"
)

///////////////////////////////////////////////////////////////////////////////

const (
	mcpServerName    = "rangebar-mcp"
	mcpServerVersion = "0.1.0"

	defaultSSEHostPort = ":8890"
)

type Config struct {
	Name    string
	Version string

	UseSSE      bool
	SSEHostPort string

	Verbose bool
}

var config Config
var logger *slog.Logger

func main() {
	var showHelp bool
	var logJSON bool

	pflag.StringVarP(&config.SSEHostPort, "port", "p", "", "host:port to listen for SSE connections")
	pflag.BoolVarP(&config.UseSSE, "sse", "", false, "Use SSE transport (default is STDIO transport)")
	pflag.BoolVarP(&logJSON, "log-json", "j", false, "Log in JSON (default is plaintext)")
	pflag.BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose logging")
	pflag.BoolVarP(&showHelp, "help", "h", false, "Show help")
	pflag.Parse()

	if showHelp {
		fmt.Fprintf(os.Stdout, "usage: %s [opts]\n\n", os.Args[0])
		pflag.PrintDefaults()
		os.Exit(0)
	}

	if config.SSEHostPort == "" {
		config.SSEHostPort = defaultSSEHostPort
	}
	config.Name = mcpServerName
	config.Version = mcpServerVersion

	logLevel := slog.LevelInfo
	if config.Verbose {
		logLevel = slog.LevelDebug
	}
	if logJSON {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	}

	if err := run(); err != nil {
		logger.Error("run loop error", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	mcpServer := mcp_server.NewMCPServer(config.Name, config.Version)
	registerTools(mcpServer)

	if config.UseSSE {
		sseServer := mcp_server.NewSSEServer(mcpServer)
		logger.Info("MCP SSE server started", "hostPort", config.SSEHostPort)
		if err := sseServer.Start(config.SSEHostPort); err != nil {
			return fmt.Errorf("MCP SSE server error: %w", err)
		}
	} else {
		logger.Info("MCP STDIO server started")
		if err := mcp_server.ServeStdio(mcpServer); err != nil {
			return fmt.Errorf("MCP STDIO server error: %w", err)
		}
	}
	return nil
}
