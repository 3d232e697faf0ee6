package menu

import (
	"errors"
	"fmt"
	"strings"

	"github.com/osvalr/mmbridge/pkg/automation"
)

// Strategy selects how a requested caption is compared against child
// captions. Both sides are normalized before the comparison.
type Strategy string

const (
	StrategyExact      Strategy = "exact"
	StrategyStartsWith Strategy = "startswith"
	StrategyContains   Strategy = "contains"
)

// ParseStrategy validates a caller-supplied strategy name. The empty
// string selects exact matching.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case "":
		return StrategyExact, nil
	case StrategyExact, StrategyStartsWith, StrategyContains:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("unknown match strategy %q (want exact, startswith, or contains)", s)
}

func (s Strategy) matches(child, want string) bool {
	switch s {
	case StrategyStartsWith:
		return strings.HasPrefix(child, want)
	case StrategyContains:
		return strings.Contains(child, want)
	default:
		return child == want
	}
}

// Result describes a completed menu invocation.
type Result struct {
	Scope        string   `json:"scope"`
	ResolvedPath []string `json:"resolved_path"`
	Invoked      bool     `json:"invoked"`
	WasDisabled  bool     `json:"was_disabled"`
}

// Invoke resolves path inside the named scope and invokes the resolved
// item. Each element of path is matched against the current node's
// children by normalized caption; the first matching child in enumeration
// order wins — a deliberate policy, since the application's own
// accelerator handling behaves the same way. The tree is walked fresh on
// every call.
//
// A disabled item fails with ItemDisabledError unless allowDisabled is
// set, in which case it is invoked anyway and the application is free to
// refuse internally.
func Invoke(sess automation.Session, scope string, path []string, strat Strategy, allowDisabled bool) (*Result, error) {
	root, err := sess.MenuScope(scope)
	if err != nil {
		if errors.Is(err, automation.ErrNoSuchScope) {
			return nil, &ScopeNotFoundError{Scope: scope, Err: err}
		}
		return nil, fmt.Errorf("resolve menu scope %q: %w", scope, err)
	}

	node := root
	resolved := make([]string, 0, len(path))
	for depth, raw := range path {
		want := Normalize(raw)
		next, caption := matchChild(node, want, strat)
		if next == nil {
			return nil, &PathNotFoundError{Scope: scope, Path: path, Consumed: depth}
		}
		node = next
		resolved = append(resolved, caption)
	}

	if n := automation.Int(node, "ItemCount", 0); n > 0 {
		return nil, &AmbiguousPathError{Scope: scope, Path: path, Children: n}
	}

	enabled := automation.Bool(node, "Enabled", true)
	if !enabled && !allowDisabled {
		return nil, &ItemDisabledError{Scope: scope, Path: path}
	}

	if _, err := node.Call("Execute"); err != nil {
		return nil, &InvocationError{Scope: scope, Path: resolved, Err: err}
	}

	return &Result{
		Scope:        scope,
		ResolvedPath: resolved,
		Invoked:      true,
		WasDisabled:  !enabled,
	}, nil
}

// matchChild returns the first child of node whose normalized caption
// satisfies the strategy, along with that normalized caption.
func matchChild(node automation.Object, want string, strat Strategy) (automation.Object, string) {
	count := automation.Int(node, "ItemCount", 0)
	for i := 0; i < count; i++ {
		child, ok := automation.ChildAt(node, "Item", i)
		if !ok {
			continue
		}
		caption := Normalize(automation.String(child, "Caption", ""))
		if strat.matches(caption, want) {
			return child, caption
		}
	}
	return nil, ""
}
