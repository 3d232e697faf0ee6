package menu_test

import (
	"errors"
	"testing"

	"github.com/osvalr/mmbridge/pkg/automation"
	"github.com/osvalr/mmbridge/pkg/automation/automationtest"
	"github.com/osvalr/mmbridge/pkg/menu"
)

// playbackScope builds a fresh fixture per call — resolution must never
// depend on state left behind by a previous traversal.
func playbackScope() (*automationtest.Session, *automationtest.Node) {
	root := automationtest.NewNode("",
		automationtest.NewNode("&Play"),
		automationtest.NewNode("Pause"),
		automationtest.NewNode("Stop..."),
	)
	sess := &automationtest.Session{
		Scopes: map[string]automation.Object{"playback": root},
	}
	return sess, root
}

func TestInvokeExactMatchesNormalizedCaptions(t *testing.T) {
	// Caller input and child captions are both normalized before compare,
	// so "Play" matches the "&Play" child even with the exact strategy.
	sess, root := playbackScope()
	res, err := menu.Invoke(sess, "playback", []string{"Play"}, menu.StrategyExact, false)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if !res.Invoked {
		t.Error("expected Invoked=true")
	}
	if res.WasDisabled {
		t.Error("expected WasDisabled=false")
	}
	if len(res.ResolvedPath) != 1 || res.ResolvedPath[0] != "play" {
		t.Errorf("resolved path = %v, want [play]", res.ResolvedPath)
	}
	if root.Kids[0].ExecCount != 1 {
		t.Errorf("Execute count = %d, want 1", root.Kids[0].ExecCount)
	}
}

func TestInvokeStartsWith(t *testing.T) {
	sess, root := playbackScope()
	res, err := menu.Invoke(sess, "playback", []string{"Pa"}, menu.StrategyStartsWith, false)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	// "pa" prefixes both "play" and "pause"; first match in enumeration
	// order wins, and "&Play" comes first.
	if res.ResolvedPath[0] != "play" {
		t.Errorf("resolved %q, want first match %q", res.ResolvedPath[0], "play")
	}
	if root.Kids[0].ExecCount != 1 || root.Kids[1].ExecCount != 0 {
		t.Error("expected only the first matching child to be invoked")
	}
}

func TestInvokeContains(t *testing.T) {
	sess, root := playbackScope()
	res, err := menu.Invoke(sess, "playback", []string{"top"}, menu.StrategyContains, false)
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if res.ResolvedPath[0] != "stop" {
		t.Errorf("resolved %q, want %q", res.ResolvedPath[0], "stop")
	}
	if root.Kids[2].ExecCount != 1 {
		t.Error("expected Stop... child to be invoked")
	}
}

func TestInvokeScopeNotFound(t *testing.T) {
	sess, _ := playbackScope()
	_, err := menu.Invoke(sess, "no-such-scope", []string{"Play"}, menu.StrategyExact, false)
	var scopeErr *menu.ScopeNotFoundError
	if !errors.As(err, &scopeErr) {
		t.Fatalf("error = %v, want ScopeNotFoundError", err)
	}
	if scopeErr.Scope != "no-such-scope" {
		t.Errorf("Scope = %q", scopeErr.Scope)
	}
}

func TestInvokePathNotFoundReportsDepth(t *testing.T) {
	deep := automationtest.NewNode("",
		automationtest.NewNode("File",
			automationtest.NewNode("Open..."),
		),
	)
	sess := &automationtest.Session{Scopes: map[string]automation.Object{"main": deep}}

	_, err := menu.Invoke(sess, "main", []string{"File", "Save"}, menu.StrategyExact, false)
	var pathErr *menu.PathNotFoundError
	if !errors.As(err, &pathErr) {
		t.Fatalf("error = %v, want PathNotFoundError", err)
	}
	if pathErr.Consumed != 1 {
		t.Errorf("Consumed = %d, want 1", pathErr.Consumed)
	}
	if deep.ExecTotal() != 0 {
		t.Error("nothing should have been invoked")
	}
}

func TestInvokeEmptyPathOverBranchIsAmbiguous(t *testing.T) {
	sess, root := playbackScope()
	_, err := menu.Invoke(sess, "playback", nil, menu.StrategyExact, false)
	var ambErr *menu.AmbiguousPathError
	if !errors.As(err, &ambErr) {
		t.Fatalf("error = %v, want AmbiguousPathError", err)
	}
	if ambErr.Children != 3 {
		t.Errorf("Children = %d, want 3", ambErr.Children)
	}
	if root.ExecTotal() != 0 {
		t.Error("nothing should have been invoked")
	}
}

func TestInvokeUnderSpecifiedPathIsAmbiguous(t *testing.T) {
	root := automationtest.NewNode("",
		automationtest.NewNode("File",
			automationtest.NewNode("Open..."),
			automationtest.NewNode("Close"),
		),
	)
	sess := &automationtest.Session{Scopes: map[string]automation.Object{"main": root}}

	_, err := menu.Invoke(sess, "main", []string{"File"}, menu.StrategyExact, false)
	var ambErr *menu.AmbiguousPathError
	if !errors.As(err, &ambErr) {
		t.Fatalf("error = %v, want AmbiguousPathError", err)
	}
	if root.ExecTotal() != 0 {
		t.Error("nothing should have been invoked")
	}
}

func TestInvokeDisabledItem(t *testing.T) {
	disabled := &automationtest.Node{CaptionText: "Eject", Disabled: true}
	root := automationtest.NewNode("", disabled)
	sess := &automationtest.Session{Scopes: map[string]automation.Object{"device": root}}

	_, err := menu.Invoke(sess, "device", []string{"Eject"}, menu.StrategyExact, false)
	var disErr *menu.ItemDisabledError
	if !errors.As(err, &disErr) {
		t.Fatalf("error = %v, want ItemDisabledError", err)
	}
	if disabled.ExecCount != 0 {
		t.Error("disabled item must not be invoked")
	}

	// allowDisabled invokes anyway and reports the state.
	res, err := menu.Invoke(sess, "device", []string{"Eject"}, menu.StrategyExact, true)
	if err != nil {
		t.Fatalf("Invoke with allowDisabled: %v", err)
	}
	if !res.WasDisabled {
		t.Error("expected WasDisabled=true")
	}
	if disabled.ExecCount != 1 {
		t.Errorf("Execute count = %d, want 1", disabled.ExecCount)
	}
}

func TestInvokeWrapsExternalFailure(t *testing.T) {
	broken := &automationtest.Node{CaptionText: "Crash", ExecErr: errors.New("COM call failed: 0x80004005")}
	root := automationtest.NewNode("", broken)
	sess := &automationtest.Session{Scopes: map[string]automation.Object{"debug": root}}

	_, err := menu.Invoke(sess, "debug", []string{"Crash"}, menu.StrategyExact, false)
	var invErr *menu.InvocationError
	if !errors.As(err, &invErr) {
		t.Fatalf("error = %v, want InvocationError", err)
	}
	if !errors.Is(err, broken.ExecErr) {
		t.Error("original diagnostic should be preserved in the chain")
	}
}

func TestParseStrategy(t *testing.T) {
	for in, want := range map[string]menu.Strategy{
		"":           menu.StrategyExact,
		"exact":      menu.StrategyExact,
		"startswith": menu.StrategyStartsWith,
		"contains":   menu.StrategyContains,
	} {
		got, err := menu.ParseStrategy(in)
		if err != nil || got != want {
			t.Errorf("ParseStrategy(%q) = %q, %v; want %q", in, got, err, want)
		}
	}
	if _, err := menu.ParseStrategy("fuzzy"); err == nil {
		t.Error("expected error for unknown strategy")
	}
}
