package main

import (
	"testing"

	"github.com/felixgeelhaar/firesalamander/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMCPServeCmd_Init(t *testing.T) {
	assert.Equal(t, "mcp", mcpCmd.Use)
	assert.Equal(t, "serve", mcpServeCmd.Use)

	flags := mcpServeCmd.Flags()
	transportFlag := flags.Lookup("transport")
	require.NotNil(t, transportFlag)
	assert.Equal(t, "t", transportFlag.Shorthand)
	assert.NotNil(t, flags.Lookup("http-addr"))
	assert.NotNil(t, flags.Lookup("max-entries"))
}

func TestResolveTransport(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.MCP.Transport = "http"
	cfg.MCP.Address = ":7070"

	transport, addr, err := resolveTransport(cfg, "", "")
	require.NoError(t, err)
	assert.Equal(t, "http", transport)
	assert.Equal(t, ":7070", addr)

	transport, addr, err = resolveTransport(cfg, "stdio", ":9090")
	require.NoError(t, err)
	assert.Equal(t, "stdio", transport)
	assert.Equal(t, ":9090", addr)

	_, _, err = resolveTransport(cfg, "grpc", "")
	assert.ErrorContains(t, err, "unsupported transport")
}

func TestRunMCPServer_ConfigError(t *testing.T) {
	resetGlobals(t)
	cfgFile = "/nonexistent/config.yaml"

	err := runMCPServer(mcpServeCmd, nil)

	assert.ErrorContains(t, err, "failed to load config")
}

func TestRunMCPServer_InvalidTransport(t *testing.T) {
	resetGlobals(t)
	old := mcpTransport
	mcpTransport = "grpc"
	t.Cleanup(func() { mcpTransport = old })

	err := runMCPServer(mcpServeCmd, nil)

	assert.ErrorContains(t, err, "unsupported transport")
}
