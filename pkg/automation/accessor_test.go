package automation_test

import (
	"errors"
	"testing"

	"github.com/osvalr/mmbridge/pkg/automation"
	"github.com/osvalr/mmbridge/pkg/automation/automationtest"
)

func TestStringConversions(t *testing.T) {
	obj := &automationtest.Object{
		Props: map[string]any{
			"title":   "  Hello World  ",
			"year":    int32(1994),
			"playing": true,
			"ratio":   1.5,
			"missing": nil,
		},
		Errs: map[string]error{"broken": errors.New("com error")},
	}

	cases := []struct {
		prop string
		want string
	}{
		{"title", "Hello World"},
		{"year", "1994"},
		{"playing", "true"},
		{"ratio", "1.5"},
		{"missing", "fallback"},
		{"broken", "fallback"},
		{"nonexistent", "fallback"},
	}
	for _, tc := range cases {
		if got := automation.String(obj, tc.prop, "fallback"); got != tc.want {
			t.Errorf("String(%q) = %q, want %q", tc.prop, got, tc.want)
		}
	}
}

func TestIntConversions(t *testing.T) {
	obj := &automationtest.Object{
		Props: map[string]any{
			"count":   int32(7),
			"length":  3.0,
			"rating":  "85",
			"flag":    true,
			"garbage": "not a number",
		},
	}

	cases := []struct {
		prop string
		want int
	}{
		{"count", 7},
		{"length", 3},
		{"rating", 85},
		{"flag", 1},
		{"garbage", -1},
		{"nonexistent", -1},
	}
	for _, tc := range cases {
		if got := automation.Int(obj, tc.prop, -1); got != tc.want {
			t.Errorf("Int(%q) = %d, want %d", tc.prop, got, tc.want)
		}
	}
}

func TestBoolConversions(t *testing.T) {
	obj := &automationtest.Object{
		Props: map[string]any{
			"native":  true,
			"numeric": int32(1),
			"zero":    int32(0),
			"textual": "true",
			"garbage": "maybe",
		},
	}

	cases := []struct {
		prop string
		want bool
	}{
		{"native", true},
		{"numeric", true},
		{"zero", false},
		{"textual", true},
		{"garbage", false},
		{"nonexistent", false},
	}
	for _, tc := range cases {
		if got := automation.Bool(obj, tc.prop, false); got != tc.want {
			t.Errorf("Bool(%q) = %v, want %v", tc.prop, got, tc.want)
		}
	}
}

func TestChild(t *testing.T) {
	inner := &automationtest.Object{Props: map[string]any{"Caption": "inner"}}
	obj := &automationtest.Object{
		Props: map[string]any{
			"Player": inner,
			"Title":  "not an object",
		},
	}

	child, ok := automation.Child(obj, "Player")
	if !ok {
		t.Fatal("Child(Player) not found")
	}
	if got := automation.String(child, "Caption", ""); got != "inner" {
		t.Errorf("child caption = %q, want %q", got, "inner")
	}

	if _, ok := automation.Child(obj, "Title"); ok {
		t.Error("Child(Title) should not be an object")
	}
	if _, ok := automation.Child(obj, "Nonexistent"); ok {
		t.Error("Child(Nonexistent) should be absent")
	}
}

func TestChildAt(t *testing.T) {
	kids := []*automationtest.Object{
		{Props: map[string]any{"Caption": "first"}},
		{Props: map[string]any{"Caption": "second"}},
	}
	obj := &automationtest.Object{
		Props: map[string]any{"ItemCount": len(kids)},
		CallFn: func(name string, args ...any) (any, error) {
			if name != "Item" {
				return nil, errors.New("unknown method")
			}
			i := args[0].(int)
			if i < 0 || i >= len(kids) {
				return nil, errors.New("index out of range")
			}
			return kids[i], nil
		},
	}

	child, ok := automation.ChildAt(obj, "Item", 1)
	if !ok {
		t.Fatal("ChildAt(1) not found")
	}
	if got := automation.String(child, "Caption", ""); got != "second" {
		t.Errorf("caption = %q, want %q", got, "second")
	}
	if _, ok := automation.ChildAt(obj, "Item", 5); ok {
		t.Error("out-of-range index should be absent")
	}
}
