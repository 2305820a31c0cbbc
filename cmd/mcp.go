package cmd

import (
	"github.com/estersassis/busfactor/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [repo-path]",
	Short: "Start the BusFactor MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents run bus-factor analyses.

Tools:
  get_bus_factor       - per-entity risk for a repository
  get_bus_factor_trend - critical share over sliding windows

Flags given here become the defaults of every tool call.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager)
	},
}
