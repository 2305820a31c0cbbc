package mcp_test

import (
	"context"
	"testing"

	"github.com/estersassis/busfactor/internal/contract"
	mcp_internal "github.com/estersassis/busfactor/internal/mcp"
	"github.com/estersassis/busfactor/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callTool(t *testing.T, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	baseCfg := &contract.Config{
		RepoPath:    ".",
		Metric:      schema.ChurnMetric,
		Threshold:   schema.DefaultThreshold,
		GroupBy:     schema.GroupByFile,
		Depth:       1,
		WindowDays:  schema.DefaultWindowDays,
		StepDays:    schema.DefaultStepDays,
		ResultLimit: schema.DefaultTopN,
		Workers:     1,
	}

	// A nil manager is fine: validation fails before any analysis runs
	var mgr contract.CacheManager
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func errorText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.True(t, res.IsError, "The response should indicate an error state")
	require.NotEmpty(t, res.Content)
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	t.Run("get_bus_factor unknown metric", func(t *testing.T) {
		res := callTool(t, "get_bus_factor", map[string]any{"metric": "lines"})
		assert.Contains(t, errorText(t, res), "invalid metric 'lines'")
	})

	t.Run("get_bus_factor threshold out of range", func(t *testing.T) {
		res := callTool(t, "get_bus_factor", map[string]any{"threshold": 1.5})
		assert.Contains(t, errorText(t, res), "invalid threshold")
	})

	t.Run("get_bus_factor directory depth below one", func(t *testing.T) {
		res := callTool(t, "get_bus_factor", map[string]any{"group_by": "directory", "depth": -1.0})
		assert.Contains(t, errorText(t, res), "invalid depth")
	})

	t.Run("get_bus_factor unknown grouping", func(t *testing.T) {
		res := callTool(t, "get_bus_factor", map[string]any{"group_by": "module"})
		assert.Contains(t, errorText(t, res), "invalid group-by")
	})

	t.Run("get_bus_factor_trend zero step", func(t *testing.T) {
		res := callTool(t, "get_bus_factor_trend", map[string]any{"step_days": 0.0})
		assert.Contains(t, errorText(t, res), "invalid step 0")
	})

	t.Run("get_bus_factor_trend negative window", func(t *testing.T) {
		res := callTool(t, "get_bus_factor_trend", map[string]any{"window_days": -5.0})
		assert.Contains(t, errorText(t, res), "invalid window -5")
	})

	t.Run("get_bus_factor_trend unknown metric", func(t *testing.T) {
		res := callTool(t, "get_bus_factor_trend", map[string]any{"metric": "gini"})
		assert.Contains(t, errorText(t, res), "invalid parameters")
	})
}

func TestMCPServer_ListsTools(t *testing.T) {
	s := mcp_internal.NewMCPServer(&contract.Config{}, nil)
	assert.NotNil(t, s.GetTool("get_bus_factor"))
	assert.NotNil(t, s.GetTool("get_bus_factor_trend"))
	assert.Nil(t, s.GetTool("unknown_tool"))
}
