// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/estersassis/busfactor/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var metricNames = []string{"churn", "entropy", "hhi", "ownership", "commit-number"}

// NewMCPServer initializes and configures the BusFactor MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"BusFactor Analysis Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_bus_factor ---
	s.AddTool(mcp.NewTool("get_bus_factor",
		mcp.WithDescription("Compute bus-factor risk per file or directory from git authorship history. Returns the riskiest entities first."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository (defaults to the server's repository).")),
		mcp.WithString("metric", mcp.Description("Ownership-concentration metric. Defaults to 'churn'."), mcp.Enum(metricNames...)),
		mcp.WithNumber("threshold", mcp.Description("Concentration share at or above which an entity is High risk, in (0, 1]. Defaults to 0.8.")),
		mcp.WithString("group_by", mcp.Description("Group results by file or directory."), mcp.Enum("file", "directory")),
		mcp.WithNumber("depth", mcp.Description("Directory depth used when group_by is 'directory'.")),
		mcp.WithString("scope", mcp.Description("Only consider files under this path prefix.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of risky entities returned.")),
	), h.handleGetBusFactor)

	// --- 2. Tool: get_bus_factor_trend ---
	s.AddTool(mcp.NewTool("get_bus_factor_trend",
		mcp.WithDescription("Compute how the share of critical entities evolves over sliding time windows."),
		mcp.WithString("repo_path", mcp.Description("Path to the Git repository.")),
		mcp.WithString("metric", mcp.Description("Ownership-concentration metric."), mcp.Enum(metricNames...)),
		mcp.WithNumber("threshold", mcp.Description("Concentration threshold in (0, 1].")),
		mcp.WithNumber("window_days", mcp.Description("Length of each window in days (>= 0). Defaults to 90.")),
		mcp.WithNumber("step_days", mcp.Description("Days between consecutive windows (>= 1). Defaults to 30.")),
	), h.handleGetBusFactorTrend)

	return s
}

// StartMCPServer starts the BusFactor MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
