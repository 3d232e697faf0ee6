package automation

import (
	"strconv"
	"strings"
)

// Safe accessors. The automation object graph has no stable shape: fields
// may be absent, nil, or of a different type than the last release. Every
// read in the engines goes through these helpers so "missing data" handling
// lives in one place — a failed or mistyped read yields the declared
// fallback, never an error.

// String reads a string property. The value is trimmed; absent, nil, or
// non-textual values yield fallback.
func String(o Object, prop, fallback string) string {
	v, err := o.Prop(prop)
	if err != nil || v == nil {
		return fallback
	}
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case bool:
		return strconv.FormatBool(s)
	case int:
		return strconv.Itoa(s)
	case int32:
		return strconv.Itoa(int(s))
	case int64:
		return strconv.FormatInt(s, 10)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	}
	return fallback
}

// Int reads an integer property. COM variants surface as int32/int64/
// float64 depending on the marshaller, and some hosts store numbers as
// strings; all of those convert. Anything else yields fallback.
func Int(o Object, prop string, fallback int) int {
	v, err := o.Prop(prop)
	if err != nil || v == nil {
		return fallback
	}
	switch n := v.(type) {
	case int:
		return n
	case int8:
		return int(n)
	case int16:
		return int(n)
	case int32:
		return int(n)
	case int64:
		return int(n)
	case uint8:
		return int(n)
	case uint16:
		return int(n)
	case uint32:
		return int(n)
	case float32:
		return int(n)
	case float64:
		return int(n)
	case bool:
		if n {
			return 1
		}
		return 0
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return parsed
		}
	}
	return fallback
}

// Bool reads a boolean property. Numeric values follow the usual
// nonzero-is-true convention; textual values parse via strconv.ParseBool.
func Bool(o Object, prop string, fallback bool) bool {
	v, err := o.Prop(prop)
	if err != nil || v == nil {
		return fallback
	}
	switch b := v.(type) {
	case bool:
		return b
	case int:
		return b != 0
	case int16:
		return b != 0
	case int32:
		return b != 0
	case int64:
		return b != 0
	case float64:
		return b != 0
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
			return parsed
		}
	}
	return fallback
}

// Child reads a property that holds a sub-object. Absent, nil, or
// non-object values yield (nil, false).
func Child(o Object, prop string) (Object, bool) {
	v, err := o.Prop(prop)
	if err != nil || v == nil {
		return nil, false
	}
	child, ok := v.(Object)
	if !ok {
		return nil, false
	}
	return child, true
}

// ChildAt calls an indexed accessor method (Item) and returns the i-th
// sub-object. Absent or non-object results yield (nil, false).
func ChildAt(o Object, method string, i int) (Object, bool) {
	v, err := o.Call(method, i)
	if err != nil || v == nil {
		return nil, false
	}
	child, ok := v.(Object)
	if !ok {
		return nil, false
	}
	return child, true
}
