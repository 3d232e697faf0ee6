// Package settings coerces and persists typed configuration values into
// the application's INI-backed settings store. Coercion is validated
// client-side before any external write; the store itself is the system of
// record — nothing is cached here.
package settings

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/osvalr/mmbridge/pkg/automation"
)

// Type is the declared type of a configuration value.
type Type string

const (
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeBoolean Type = "boolean"
)

// ParseType validates a caller-supplied type name. The empty string
// selects string.
func ParseType(s string) (Type, error) {
	switch Type(s) {
	case "":
		return TypeString, nil
	case TypeString, TypeInteger, TypeBoolean:
		return Type(s), nil
	}
	return "", fmt.Errorf("unknown value type %q (want string, integer, or boolean)", s)
}

// PersistMode controls how aggressively a write is made durable.
type PersistMode string

const (
	// PersistNone leaves the write in the in-memory store; durability is
	// deferred to the application's own save cycle.
	PersistNone PersistMode = "none"
	// PersistFlush forces the store to write through to its backing file.
	PersistFlush PersistMode = "flush"
	// PersistApply additionally signals the application to react to the
	// change.
	PersistApply PersistMode = "apply"
)

// ParsePersistMode validates a caller-supplied persist mode. The empty
// string selects none.
func ParsePersistMode(s string) (PersistMode, error) {
	switch PersistMode(s) {
	case "":
		return PersistNone, nil
	case PersistNone, PersistFlush, PersistApply:
		return PersistMode(s), nil
	}
	return "", fmt.Errorf("unknown persist mode %q (want none, flush, or apply)", s)
}

// CoercionError reports a value that does not convert to its declared
// type. Raised before any store call — the external store never sees a
// value this package could not type.
type CoercionError struct {
	Section string
	Key     string
	Value   any
	Type    Type
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("cannot coerce %v (%T) to %s for [%s] %s", e.Value, e.Value, e.Type, e.Section, e.Key)
}

// WriteError reports that the external store rejected a write, flush, or
// apply. The store diagnostic is preserved.
type WriteError struct {
	Section string
	Key     string
	Op      string
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("settings %s for [%s] %s: %v", e.Op, e.Section, e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// WriteResult reports a completed write. Previous is nil with
// PreviousPresent false when the key did not exist — a normal case, not an
// error.
type WriteResult struct {
	Section         string      `json:"section"`
	Key             string      `json:"key"`
	Previous        any         `json:"previous_value"`
	PreviousPresent bool        `json:"previous_present"`
	Applied         bool        `json:"applied"`
	Persist         PersistMode `json:"persist_mode_used"`
}

// ReadResult reports a typed read. Value is nil with Present false when
// the key does not exist.
type ReadResult struct {
	Section string `json:"section"`
	Key     string `json:"key"`
	Value   any    `json:"value"`
	Present bool   `json:"present"`
}

// SetValue coerces value to typ, writes it to (section, key), captures the
// prior value, and applies the persist mode. Exactly one flush or apply
// signal is sent for the corresponding modes; PersistNone sends neither.
func SetValue(store automation.Store, section, key string, value any, typ Type, mode PersistMode) (*WriteResult, error) {
	coerced, err := Coerce(value, typ)
	if err != nil {
		return nil, &CoercionError{Section: section, Key: key, Value: value, Type: typ}
	}

	prev, present := readPrevious(store, section, key, typ)

	if err := writeValue(store, section, key, coerced, typ); err != nil {
		return nil, &WriteError{Section: section, Key: key, Op: "write", Err: err}
	}

	switch mode {
	case PersistFlush:
		if err := store.Flush(); err != nil {
			return nil, &WriteError{Section: section, Key: key, Op: "flush", Err: err}
		}
	case PersistApply:
		if err := store.Apply(); err != nil {
			return nil, &WriteError{Section: section, Key: key, Op: "apply", Err: err}
		}
	}

	return &WriteResult{
		Section:         section,
		Key:             key,
		Previous:        prev,
		PreviousPresent: present,
		Applied:         true,
		Persist:         mode,
	}, nil
}

// GetValue reads (section, key) as typ. Missing keys report Present=false.
func GetValue(store automation.Store, section, key string, typ Type) (*ReadResult, error) {
	res := &ReadResult{Section: section, Key: key}
	var err error
	switch typ {
	case TypeInteger:
		var v int
		v, res.Present, err = store.IntValue(section, key)
		if res.Present {
			res.Value = v
		}
	case TypeBoolean:
		var v bool
		v, res.Present, err = store.BoolValue(section, key)
		if res.Present {
			res.Value = v
		}
	default:
		var v string
		v, res.Present, err = store.StringValue(section, key)
		if res.Present {
			res.Value = v
		}
	}
	if err != nil {
		return nil, &WriteError{Section: section, Key: key, Op: "read", Err: err}
	}
	return res, nil
}

// Coerce converts a caller-supplied value to its declared type. Booleans
// accept native bools, 0/1, and the usual textual forms
// (true/false/yes/no/on/off/1/0); integers require a whole number; strings
// accept any scalar's textual form.
func Coerce(value any, typ Type) (any, error) {
	switch typ {
	case TypeBoolean:
		return coerceBool(value)
	case TypeInteger:
		return coerceInt(value)
	default:
		return coerceString(value)
	}
}

func coerceBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case int:
		if v == 0 || v == 1 {
			return v == 1, nil
		}
	case float64:
		if v == 0 || v == 1 {
			return v == 1, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "on", "1":
			return true, nil
		case "false", "no", "off", "0":
			return false, nil
		}
	}
	return false, fmt.Errorf("not a recognized boolean form: %v", value)
}

func coerceInt(value any) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("not a whole number: %v", v)
		}
		return int(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("not parseable as a whole number: %q", v)
		}
		return n, nil
	}
	return 0, fmt.Errorf("not an integer: %v (%T)", value, value)
}

func coerceString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case nil:
		return "", fmt.Errorf("nil is not a string")
	}
	return "", fmt.Errorf("not a textual value: %v (%T)", value, value)
}

// readPrevious captures the value being replaced. Safe-accessor semantics:
// a missing key — or a store that cannot even read it — is an absent
// previous value, never a failure of the write itself.
func readPrevious(store automation.Store, section, key string, typ Type) (any, bool) {
	switch typ {
	case TypeInteger:
		v, present, err := store.IntValue(section, key)
		if err != nil || !present {
			return nil, false
		}
		return v, true
	case TypeBoolean:
		v, present, err := store.BoolValue(section, key)
		if err != nil || !present {
			return nil, false
		}
		return v, true
	default:
		v, present, err := store.StringValue(section, key)
		if err != nil || !present {
			return nil, false
		}
		return v, true
	}
}

func writeValue(store automation.Store, section, key string, coerced any, typ Type) error {
	switch typ {
	case TypeInteger:
		return store.SetIntValue(section, key, coerced.(int))
	case TypeBoolean:
		return store.SetBoolValue(section, key, coerced.(bool))
	default:
		return store.SetStringValue(section, key, coerced.(string))
	}
}
