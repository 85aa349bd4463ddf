// Package mcp exposes leaf diagnosis and garden tools to AI agents over
// the Model Context Protocol.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/leafdoctor/leafdoctor/internal/api"
	"github.com/leafdoctor/leafdoctor/internal/assistant"
	"github.com/leafdoctor/leafdoctor/internal/config"
	"github.com/leafdoctor/leafdoctor/internal/weather"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes plant diagnosis tools.
type Server struct {
	backend  *api.Client
	provider assistant.Provider
	weather  *weather.Client
	token    string
	cfg      config.Config
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server. token may be empty; tools that
// need an account report that to the agent instead of failing the call.
func NewServer(backend *api.Client, provider assistant.Provider, wc *weather.Client, token string, cfg config.Config) *Server {
	s := &Server{
		backend:  backend,
		provider: provider,
		weather:  wc,
		token:    token,
		cfg:      cfg,
	}

	s.mcp = server.NewMCPServer(
		"leafdoctor",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(diagnoseLeafTool, s.handleDiagnoseLeaf)
	s.mcp.AddTool(listGardenTool, s.handleListGarden)
	s.mcp.AddTool(getSchedulesTool, s.handleGetSchedules)
	s.mcp.AddTool(waterPlantTool, s.handleWaterPlant)
	s.mcp.AddTool(getWeatherTool, s.handleGetWeather)
	s.mcp.AddTool(askAssistantTool, s.handleAskAssistant)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
