// Package main provides the mmbridge-mcp binary — MCP server for AI agents.
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/osvalr/mmbridge/pkg/automation/comsession"
	bmcp "github.com/osvalr/mmbridge/pkg/ecosystem/mcp"
	"github.com/osvalr/mmbridge/pkg/schema"
)

var version = "dev"

func main() {
	cfg := schema.Default()
	if path := os.Getenv("MMBRIDGE_CONFIG"); path != "" {
		loaded, err := schema.LoadFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	sess, err := comsession.New(comsession.Options{ProgID: cfg.ProgID})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer sess.Close()

	s := bmcp.NewServer(version, bmcp.NewHandlers(sess, cfg))
	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
