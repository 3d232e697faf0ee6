package main

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	bmcp "github.com/osvalr/mmbridge/pkg/ecosystem/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the MCP tool surface over stdio",
	RunE:  runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadBridgeConfig()
	if err != nil {
		return err
	}
	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	s := bmcp.NewServer(version, bmcp.NewHandlers(sess, cfg))
	return server.ServeStdio(s)
}
