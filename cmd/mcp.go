package cmd

import (
	"github.com/spf13/cobra"

	"github.com/leafdoctor/leafdoctor/internal/mcp"
	"github.com/leafdoctor/leafdoctor/internal/session"
	"github.com/leafdoctor/leafdoctor/internal/weather"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long: `Starts a Model Context Protocol server on stdio, exposing leaf
diagnosis, garden, watering and weather tools to AI agents.

Add to your agent's MCP configuration:
  {"command": "leafdoctor", "args": ["mcp"]}`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client := newAPIClient(cfg)
		provider, err := newAssistant(cfg, client)
		if err != nil {
			return err
		}

		srv := mcp.NewServer(client, provider, weather.NewClient(""), session.Token(), *cfg)
		return srv.Serve()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
