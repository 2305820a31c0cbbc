package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/estersassis/busfactor/core"
	"github.com/estersassis/busfactor/core/algo"
	"github.com/estersassis/busfactor/internal/contract"
	"github.com/estersassis/busfactor/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// busFactorReport is the JSON payload of get_bus_factor.
type busFactorReport struct {
	Metric        schema.Metric            `json:"metric"`
	Threshold     float64                  `json:"threshold"`
	GroupBy       schema.GroupBy           `json:"group_by"`
	TotalEntities int                      `json:"total_entities"`
	Classes       map[schema.RiskClass]int `json:"classes"`
	Risky         []schema.EntityMetrics   `json:"risky"`
}

// applyEngineArgs overrides the engine options shared by both tools.
func applyEngineArgs(cfg *contract.Config, request mcp.CallToolRequest) {
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.RepoPath = p
	}
	if m := request.GetString("metric", ""); m != "" {
		cfg.Metric = schema.Metric(m)
	}
	if th := request.GetFloat("threshold", 0); th != 0 {
		cfg.Threshold = th
	}
}

func (h *toolHandler) handleGetBusFactor(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	applyEngineArgs(cfg, request)
	if g := request.GetString("group_by", ""); g != "" {
		cfg.GroupBy = schema.GroupBy(g)
	}
	if d := request.GetInt("depth", 0); d != 0 {
		cfg.Depth = d
	}
	if s := request.GetString("scope", ""); s != "" {
		cfg.Scope = contract.NormalizeScope(s)
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	if err := cfg.EngineOptions().Validate(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}

	results, _, err := core.GetEntityResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	report := busFactorReport{
		Metric:        cfg.Metric,
		Threshold:     cfg.Threshold,
		GroupBy:       cfg.GroupBy,
		TotalEntities: len(results),
		Classes:       algo.CountByClass(results),
		Risky:         algo.RankRisky(results, cfg.ResultLimit),
	}
	jsonData, _ := json.MarshalIndent(report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetBusFactorTrend(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	applyEngineArgs(cfg, request)
	cfg.WindowDays = request.GetInt("window_days", cfg.WindowDays)
	cfg.StepDays = request.GetInt("step_days", cfg.StepDays)

	if err := cfg.EngineOptions().Validate(); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid parameters: %v", err)), nil
	}
	if err := schema.ValidateTrendWindow(cfg.WindowDays, cfg.StepDays); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid trend parameters: %v", err)), nil
	}

	result, _, err := core.GetTrendResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("trend analysis failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
