// Package automation defines the contracts for talking to a running
// MediaMonkey instance: a dynamic object handle, the session that owns the
// connection, and the typed settings store. The engines (menu, script,
// settings, player) are pure functions of (session, request) — they hold no
// state of their own and never cache anything read through these interfaces.
package automation

import (
	"context"
	"errors"
)

// ErrNoSuchScope is returned by Session.MenuScope when the application has
// no menu or toolbar root registered under the requested name.
var ErrNoSuchScope = errors.New("no such menu scope")

// Object is a handle to one node of the application's automation object
// graph. The graph is opaque and regenerated by the application at will, so
// handles are borrowed per call and never retained across operations.
//
// Menu node objects follow a small property/method convention:
// Caption (string), Enabled (bool), ItemCount (int), Item(i) returning the
// i-th child Object, and Execute() invoking the node.
type Object interface {
	// Prop reads a named property. The value is whatever the host
	// marshalled: a scalar, nil, or another Object for sub-objects.
	Prop(name string) (any, error)

	// SetProp writes a named property.
	SetProp(name string, value any) error

	// Call invokes a named method. A nil result is valid for void methods.
	Call(name string, args ...any) (any, error)
}

// Deliver receives one script callback payload from the host scripting
// engine. hostErr is non-nil when the engine itself failed to produce a
// payload. A well-behaved script delivers exactly once per submission; the
// script bridge detects and rejects duplicate deliveries.
type Deliver func(payload string, hostErr error)

// Session is the single stateful handle to the external application. All
// calls against one session are serialized by the implementation — the
// native automation model has thread affinity, so implementations funnel
// every external call through a single owning execution context.
type Session interface {
	// App returns the application root object (SDBApplication).
	App() Object

	// MenuScope resolves a named top-level menu/toolbar root. Returns
	// ErrNoSuchScope (possibly wrapped) when the name is unknown.
	MenuScope(name string) (Object, error)

	// RunScript submits source to the host scripting engine and arranges
	// for the callback payload to be passed to deliver. RunScript returns
	// once the submission is complete; delivery may happen before it
	// returns (synchronous hosts) or after (asynchronous hosts).
	RunScript(ctx context.Context, source string, deliver Deliver) error

	// Settings returns the application's INI-backed settings store.
	Settings() Store

	// Close releases the session. The session must not be used afterwards.
	Close() error
}

// Store is typed access to the application's settings, keyed by
// (section, key). Readers report presence explicitly — a missing key is a
// normal, supported case, never an error.
type Store interface {
	StringValue(section, key string) (value string, present bool, err error)
	IntValue(section, key string) (value int, present bool, err error)
	BoolValue(section, key string) (value bool, present bool, err error)

	SetStringValue(section, key, value string) error
	SetIntValue(section, key string, value int) error
	SetBoolValue(section, key string, value bool) error

	// Flush forces the store to write through to its backing file.
	Flush() error

	// Apply makes the write effective in the running application (implies
	// durability; the application is additionally signalled to react).
	Apply() error
}
