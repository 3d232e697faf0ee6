package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates a new MCP server with the mmbridge tools registered.
func NewServer(version string, h *Handlers) *server.MCPServer {
	s := server.NewMCPServer(
		"mmbridge",
		version,
		server.WithToolCapabilities(true),
	)

	// Register tools
	s.AddTool(
		mcp.NewTool("mm/invoke_menu",
			mcp.WithDescription("Resolve a menu path under a named scope and invoke the final item"),
			mcp.WithString("scope", mcp.Required(), mcp.Description("Menu scope name, e.g. 'Menu_Tools' or 'Menu_Play'")),
			mcp.WithArray("path", mcp.Required(), mcp.Description("Menu captions from the scope root to the item to invoke")),
			mcp.WithString("strategy", mcp.Description("Caption match strategy"), mcp.Enum("exact", "startswith", "contains")),
			mcp.WithBoolean("allow_disabled", mcp.Description("Invoke the item even when it reports disabled")),
		),
		h.HandleInvokeMenu,
	)

	s.AddTool(
		mcp.NewTool("mm/run_script",
			mcp.WithDescription("Run JavaScript inside MediaMonkey and return the callback payload"),
			mcp.WithString("source", mcp.Required(), mcp.Description("JavaScript source to run in the host scripting engine")),
			mcp.WithBoolean("expect_callback", mcp.Description("Wrap the source so its value is delivered back (default true)")),
			mcp.WithString("timeout", mcp.Description("Per-call timeout as a Go duration, e.g. '10s'")),
		),
		h.HandleRunScript,
	)

	s.AddTool(
		mcp.NewTool("mm/get_config",
			mcp.WithDescription("Read a value from MediaMonkey's settings store"),
			mcp.WithString("section", mcp.Required(), mcp.Description("INI section name")),
			mcp.WithString("key", mcp.Required(), mcp.Description("Key within the section")),
			mcp.WithString("type", mcp.Description("Value type"), mcp.Enum("string", "integer", "boolean")),
		),
		h.HandleGetConfig,
	)

	s.AddTool(
		mcp.NewTool("mm/set_config",
			mcp.WithDescription("Write a value to MediaMonkey's settings store"),
			mcp.WithString("section", mcp.Required(), mcp.Description("INI section name")),
			mcp.WithString("key", mcp.Required(), mcp.Description("Key within the section")),
			mcp.WithString("value", mcp.Required(), mcp.Description("Value to write; coerced to the declared type")),
			mcp.WithString("type", mcp.Description("Value type"), mcp.Enum("string", "integer", "boolean")),
			mcp.WithString("persist", mcp.Description("Persistence mode after the write"), mcp.Enum("none", "flush", "apply")),
		),
		h.HandleSetConfig,
	)

	s.AddTool(
		mcp.NewTool("mm/playback_state",
			mcp.WithDescription("Snapshot the player: play/pause flags, volume, position, and the current track"),
		),
		h.HandlePlaybackState,
	)

	s.AddTool(
		mcp.NewTool("mm/control_playback",
			mcp.WithDescription("Drive playback and return the resulting player state"),
			mcp.WithString("action", mcp.Required(), mcp.Description("Playback action"),
				mcp.Enum("play", "pause", "stop", "next", "previous", "toggle", "shuffle", "repeat", "stop_after_current")),
		),
		h.HandleControlPlayback,
	)

	s.AddTool(
		mcp.NewTool("mm/set_volume",
			mcp.WithDescription("Set the player volume (0-100, clamped)"),
			mcp.WithNumber("volume", mcp.Required(), mcp.Description("Volume percentage")),
		),
		h.HandleSetVolume,
	)

	s.AddTool(
		mcp.NewTool("mm/seek",
			mcp.WithDescription("Seek within the current track"),
			mcp.WithNumber("position_ms", mcp.Required(), mcp.Description("Target position in milliseconds (clamped to >= 0)")),
		),
		h.HandleSeek,
	)

	s.AddTool(
		mcp.NewTool("mm/now_playing",
			mcp.WithDescription("List the Now Playing queue, optionally filtered by an expression over track fields"),
			mcp.WithNumber("limit", mcp.Description("Maximum number of tracks to return (default: whole queue)")),
			mcp.WithString("filter", mcp.Description("Boolean expression over track fields, e.g. Genre == \"Jazz\" && Rating >= 80")),
		),
		h.HandleNowPlaying,
	)

	s.AddTool(
		mcp.NewTool("mm/schema",
			mcp.WithDescription("Export a JSON Schema for the bridge config or one of the tool result shapes"),
			mcp.WithString("kind", mcp.Required(), mcp.Description("'config' or a result kind such as 'playback_state' or 'track'")),
		),
		h.HandleSchema,
	)

	return s
}
