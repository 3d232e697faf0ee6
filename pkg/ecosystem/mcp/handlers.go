package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/osvalr/mmbridge/pkg/automation"
	"github.com/osvalr/mmbridge/pkg/menu"
	"github.com/osvalr/mmbridge/pkg/player"
	"github.com/osvalr/mmbridge/pkg/schema"
	"github.com/osvalr/mmbridge/pkg/script"
	"github.com/osvalr/mmbridge/pkg/settings"
)

// Handlers carries the live session and bridge configuration into the tool
// handlers. One Handlers serves one session; the session serializes all
// host calls internally.
type Handlers struct {
	Session automation.Session
	Config  *schema.Config
}

// NewHandlers binds the tool handlers to a session and configuration.
func NewHandlers(sess automation.Session, cfg *schema.Config) *Handlers {
	if cfg == nil {
		cfg = schema.Default()
	}
	return &Handlers{Session: sess, Config: cfg}
}

// HandleInvokeMenu implements the mm/invoke_menu MCP tool.
func (h *Handlers) HandleInvokeMenu(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	scope, _ := args["scope"].(string)
	if scope == "" {
		return errorResult("scope argument is required"), nil
	}
	path, err := stringSlice(args["path"])
	if err != nil {
		return errorResult(fmt.Sprintf("path argument: %s", err)), nil
	}

	strategyName, _ := args["strategy"].(string)
	if strategyName == "" {
		strategyName = h.Config.MenuMatch
	}
	strat, err := menu.ParseStrategy(strategyName)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	allowDisabled, _ := args["allow_disabled"].(bool)

	result, err := menu.Invoke(h.Session, scope, path, strat, allowDisabled)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return jsonResult(result), nil
}

// HandleRunScript implements the mm/run_script MCP tool.
func (h *Handlers) HandleRunScript(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	source, _ := args["source"].(string)
	if source == "" {
		return errorResult("source argument is required"), nil
	}

	expectCallback := true
	if v, ok := args["expect_callback"].(bool); ok {
		expectCallback = v
	}

	timeout := h.Config.Timeout()
	if raw, _ := args["timeout"].(string); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return errorResult(fmt.Sprintf("timeout argument: not a positive duration: %q", raw)), nil
		}
		timeout = d
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := script.Run(ctx, h.Session, source, expectCallback)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	res := jsonResult(result)
	res.IsError = !result.Success
	return res, nil
}

// HandleGetConfig implements the mm/get_config MCP tool.
func (h *Handlers) HandleGetConfig(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	section, _ := args["section"].(string)
	key, _ := args["key"].(string)
	if section == "" || key == "" {
		return errorResult("section and key arguments are required"), nil
	}
	typ, err := settings.ParseType(stringArg(args, "type"))
	if err != nil {
		return errorResult(err.Error()), nil
	}

	result, err := settings.GetValue(h.Session.Settings(), section, key, typ)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return jsonResult(result), nil
}

// HandleSetConfig implements the mm/set_config MCP tool.
func (h *Handlers) HandleSetConfig(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	section, _ := args["section"].(string)
	key, _ := args["key"].(string)
	if section == "" || key == "" {
		return errorResult("section and key arguments are required"), nil
	}
	value, ok := args["value"]
	if !ok {
		return errorResult("value argument is required"), nil
	}
	typ, err := settings.ParseType(stringArg(args, "type"))
	if err != nil {
		return errorResult(err.Error()), nil
	}

	persistName := stringArg(args, "persist")
	if persistName == "" {
		persistName = h.Config.DefaultPersist
	}
	mode, err := settings.ParsePersistMode(persistName)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	result, err := settings.SetValue(h.Session.Settings(), section, key, value, typ, mode)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return jsonResult(result), nil
}

// HandlePlaybackState implements the mm/playback_state MCP tool.
func (h *Handlers) HandlePlaybackState(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state, err := player.Snapshot(h.Session)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return jsonResult(state), nil
}

// HandleControlPlayback implements the mm/control_playback MCP tool.
func (h *Handlers) HandleControlPlayback(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	action, err := player.ParseAction(stringArg(args, "action"))
	if err != nil {
		return errorResult(err.Error()), nil
	}

	state, err := player.Control(h.Session, action)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return jsonResult(state), nil
}

// HandleSetVolume implements the mm/set_volume MCP tool.
func (h *Handlers) HandleSetVolume(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	level, ok := args["volume"].(float64)
	if !ok {
		return errorResult("volume argument is required"), nil
	}

	state, err := player.SetVolume(h.Session, int(level))
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return jsonResult(state), nil
}

// HandleSeek implements the mm/seek MCP tool.
func (h *Handlers) HandleSeek(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	pos, ok := args["position_ms"].(float64)
	if !ok {
		return errorResult("position_ms argument is required"), nil
	}

	state, err := player.Seek(h.Session, int(pos))
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return jsonResult(state), nil
}

// HandleNowPlaying implements the mm/now_playing MCP tool.
func (h *Handlers) HandleNowPlaying(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	limit := -1
	if v, ok := args["limit"].(float64); ok {
		limit = int(v)
	}

	tracks, err := player.NowPlaying(h.Session, limit)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	if expression, _ := args["filter"].(string); expression != "" {
		tracks, err = player.Filter(tracks, expression)
		if err != nil {
			return errorResult(fmt.Sprintf("filter: %s", err)), nil
		}
	}

	return jsonResult(map[string]any{
		"count":  len(tracks),
		"tracks": tracks,
	}), nil
}

// HandleSchema implements the mm/schema MCP tool.
func (h *Handlers) HandleSchema(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	kind, _ := args["kind"].(string)

	var data []byte
	var err error

	switch kind {
	case "config":
		data, err = schema.GenerateConfigJSONSchema()
	default:
		data, err = schema.GenerateResultJSONSchema(kind)
	}

	if err != nil {
		return errorResult(err.Error()), nil
	}
	return textResult(string(data)), nil
}

// stringArg reads an optional string argument, tolerating absence.
func stringArg(args map[string]any, name string) string {
	s, _ := args[name].(string)
	return s
}

// stringSlice converts a JSON array argument to []string.
func stringSlice(v any) ([]string, error) {
	raw, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("want an array of strings, got %T", v)
	}
	out := make([]string, 0, len(raw))
	for i, e := range raw {
		s, ok := e.(string)
		if !ok {
			return nil, fmt.Errorf("element %d: want a string, got %T", i, e)
		}
		out = append(out, s)
	}
	return out, nil
}

func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult(fmt.Sprintf("encode result: %s", err))
	}
	return textResult(string(data))
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(msg),
		},
		IsError: true,
	}
}
