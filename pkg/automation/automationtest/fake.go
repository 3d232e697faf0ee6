// Package automationtest provides in-memory fakes for the automation
// contracts. Every engine test builds a fresh fixture per case — the real
// application regenerates its object graph between calls, so shared mutable
// fixtures would test a world that doesn't exist.
package automationtest

import (
	"context"
	"fmt"

	"github.com/osvalr/mmbridge/pkg/automation"
)

// Object is a map-backed automation.Object with per-property errors and a
// pluggable method dispatcher.
type Object struct {
	Props  map[string]any
	Errs   map[string]error
	CallFn func(name string, args ...any) (any, error)

	SetLog  []SetCall
	CallLog []string
}

// SetCall records one SetProp invocation.
type SetCall struct {
	Name  string
	Value any
}

func (o *Object) Prop(name string) (any, error) {
	if err, ok := o.Errs[name]; ok {
		return nil, err
	}
	v, ok := o.Props[name]
	if !ok {
		return nil, fmt.Errorf("object has no property %q", name)
	}
	return v, nil
}

func (o *Object) SetProp(name string, value any) error {
	if err, ok := o.Errs[name]; ok {
		return err
	}
	o.SetLog = append(o.SetLog, SetCall{Name: name, Value: value})
	if o.Props == nil {
		o.Props = make(map[string]any)
	}
	o.Props[name] = value
	return nil
}

func (o *Object) Call(name string, args ...any) (any, error) {
	o.CallLog = append(o.CallLog, name)
	if o.CallFn == nil {
		return nil, fmt.Errorf("object has no method %q", name)
	}
	return o.CallFn(name, args...)
}

// Node is a menu tree node following the menu object convention
// (Caption/Enabled/ItemCount/Item/Execute). The zero value is an enabled
// leaf with an empty caption.
type Node struct {
	CaptionText string
	Disabled    bool
	Kids        []*Node
	ExecErr     error

	ExecCount int
}

// NewNode builds an enabled node with the given caption and children.
func NewNode(caption string, kids ...*Node) *Node {
	return &Node{CaptionText: caption, Kids: kids}
}

func (n *Node) Prop(name string) (any, error) {
	switch name {
	case "Caption":
		return n.CaptionText, nil
	case "Enabled":
		return !n.Disabled, nil
	case "ItemCount":
		return len(n.Kids), nil
	}
	return nil, fmt.Errorf("menu node has no property %q", name)
}

func (n *Node) SetProp(name string, value any) error {
	return fmt.Errorf("menu node property %q is read-only", name)
}

func (n *Node) Call(name string, args ...any) (any, error) {
	switch name {
	case "Item":
		if len(args) != 1 {
			return nil, fmt.Errorf("Item expects one index argument")
		}
		i, ok := args[0].(int)
		if !ok || i < 0 || i >= len(n.Kids) {
			return nil, fmt.Errorf("Item index %v out of range", args[0])
		}
		return n.Kids[i], nil
	case "Execute":
		n.ExecCount++
		return nil, n.ExecErr
	}
	return nil, fmt.Errorf("menu node has no method %q", name)
}

// ExecTotal returns the number of Execute calls across the whole subtree.
func (n *Node) ExecTotal() int {
	total := n.ExecCount
	for _, k := range n.Kids {
		total += k.ExecTotal()
	}
	return total
}

// Session is an automation.Session fake. ScriptFn, when set, produces the
// callback payload delivered for a submitted script; a nil ScriptFn means
// the script never delivers, which lets tests exercise caller timeouts.
type Session struct {
	AppObj   automation.Object
	Scopes   map[string]automation.Object
	StoreObj *Store

	ScriptFn     func(source string) (string, error)
	SubmitErr    error
	DeliverTwice bool

	ScriptLog  []string
	CloseCount int
}

func (s *Session) App() automation.Object {
	if s.AppObj == nil {
		s.AppObj = &Object{Props: map[string]any{}}
	}
	return s.AppObj
}

func (s *Session) MenuScope(name string) (automation.Object, error) {
	scope, ok := s.Scopes[name]
	if !ok {
		return nil, fmt.Errorf("scope %q: %w", name, automation.ErrNoSuchScope)
	}
	return scope, nil
}

func (s *Session) RunScript(ctx context.Context, source string, deliver automation.Deliver) error {
	s.ScriptLog = append(s.ScriptLog, source)
	if s.SubmitErr != nil {
		return s.SubmitErr
	}
	if s.ScriptFn == nil {
		return nil
	}
	payload, err := s.ScriptFn(source)
	deliver(payload, err)
	if s.DeliverTwice {
		deliver(payload, err)
	}
	return nil
}

func (s *Session) Settings() automation.Store {
	if s.StoreObj == nil {
		s.StoreObj = NewStore()
	}
	return s.StoreObj
}

func (s *Session) Close() error {
	s.CloseCount++
	return nil
}

// Store is an automation.Store spy backed by a typed in-memory map.
type Store struct {
	values map[storeKey]any

	Writes     []Write
	FlushCount int
	ApplyCount int

	WriteErr error
	ReadErr  error
}

type storeKey struct {
	Section string
	Key     string
}

// Write records one settings mutation.
type Write struct {
	Section string
	Key     string
	Value   any
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{values: make(map[storeKey]any)}
}

// Seed pre-populates a value without recording a write.
func (s *Store) Seed(section, key string, value any) {
	if s.values == nil {
		s.values = make(map[storeKey]any)
	}
	s.values[storeKey{section, key}] = value
}

func (s *Store) StringValue(section, key string) (string, bool, error) {
	if s.ReadErr != nil {
		return "", false, s.ReadErr
	}
	v, ok := s.values[storeKey{section, key}]
	if !ok {
		return "", false, nil
	}
	str, _ := v.(string)
	return str, ok, nil
}

func (s *Store) IntValue(section, key string) (int, bool, error) {
	if s.ReadErr != nil {
		return 0, false, s.ReadErr
	}
	v, ok := s.values[storeKey{section, key}]
	if !ok {
		return 0, false, nil
	}
	n, _ := v.(int)
	return n, ok, nil
}

func (s *Store) BoolValue(section, key string) (bool, bool, error) {
	if s.ReadErr != nil {
		return false, false, s.ReadErr
	}
	v, ok := s.values[storeKey{section, key}]
	if !ok {
		return false, false, nil
	}
	b, _ := v.(bool)
	return b, ok, nil
}

func (s *Store) set(section, key string, value any) error {
	if s.WriteErr != nil {
		return s.WriteErr
	}
	if s.values == nil {
		s.values = make(map[storeKey]any)
	}
	s.values[storeKey{section, key}] = value
	s.Writes = append(s.Writes, Write{Section: section, Key: key, Value: value})
	return nil
}

func (s *Store) SetStringValue(section, key, value string) error {
	return s.set(section, key, value)
}

func (s *Store) SetIntValue(section, key string, value int) error {
	return s.set(section, key, value)
}

func (s *Store) SetBoolValue(section, key string, value bool) error {
	return s.set(section, key, value)
}

func (s *Store) Flush() error {
	s.FlushCount++
	return nil
}

func (s *Store) Apply() error {
	s.ApplyCount++
	return nil
}
