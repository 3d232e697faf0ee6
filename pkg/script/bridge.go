// Package script rounds arbitrary script execution through the
// application's single-callback scripting bridge. The host engine runs the
// script and delivers its result as a JSON-encoded payload through one
// named callback; from the caller's point of view the whole exchange is
// synchronous.
package script

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/osvalr/mmbridge/pkg/automation"
)

// CallbackName is the host-side function the wrapped script funnels its
// result through. Scripts that call it themselves must not be re-wrapped,
// or the callback fires twice.
const CallbackName = "runJSCode_callback"

// Result is the outcome of one script run. A malformed payload is data,
// not an error: Success is false and Raw carries the text so the script
// author can see their own mistake.
type Result struct {
	Success bool   `json:"success"`
	Value   any    `json:"value"`
	Raw     string `json:"raw"`
}

// ExecutionError reports that the host engine itself failed: a script
// error envelope, a submission failure, a duplicate callback delivery, or
// no delivery before the context deadline. The host diagnostic is
// preserved verbatim.
type ExecutionError struct {
	Diag string
	Err  error
}

func (e *ExecutionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("script execution failed: %s: %v", e.Diag, e.Err)
	}
	return fmt.Sprintf("script execution failed: %s", e.Diag)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// envelope is the JSON contract of the wrapper: the script's value (or its
// failure) serialized by the wrapper code appended to the caller's source.
type envelope struct {
	OK    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

// Run executes source inside the application's scripting engine and blocks
// until the callback delivers a payload or ctx expires.
//
// With expectCallback true (the safe default), source is rewritten so its
// evaluated value — awaited first when it is a promise — is delivered
// through CallbackName as an {ok, data|error} envelope. Sources that
// already mention CallbackName are submitted untouched to avoid
// double-wrapping. With expectCallback false the source is submitted as-is
// and whatever JSON the callback delivers is decoded without envelope
// interpretation; a script that never invokes the callback simply times
// out, which is the caller's signal that the flag was wrong.
func Run(ctx context.Context, sess automation.Session, source string, expectCallback bool) (*Result, error) {
	if strings.TrimSpace(source) == "" {
		return nil, fmt.Errorf("script source is empty")
	}

	submitted := source
	wrapped := false
	if expectCallback && !strings.Contains(source, CallbackName) {
		submitted = wrap(source)
		wrapped = true
	}

	type delivery struct {
		payload string
		hostErr error
	}

	// Single-slot channel: the callback fulfills it exactly once. A second
	// delivery for the same request is a defect to reject, not a value to
	// silently overwrite.
	ch := make(chan delivery, 1)
	var mu sync.Mutex
	deliveries := 0
	deliver := func(payload string, hostErr error) {
		mu.Lock()
		deliveries++
		mu.Unlock()
		select {
		case ch <- delivery{payload: payload, hostErr: hostErr}:
		default:
		}
	}

	if err := sess.RunScript(ctx, submitted, deliver); err != nil {
		return nil, &ExecutionError{Diag: "submit script", Err: err}
	}

	var d delivery
	select {
	case d = <-ch:
	case <-ctx.Done():
		return nil, &ExecutionError{Diag: "no callback delivery", Err: ctx.Err()}
	}

	mu.Lock()
	dup := deliveries > 1
	mu.Unlock()
	if dup {
		return nil, &ExecutionError{Diag: "callback delivered more than once (script already invokes the callback; run with expect_callback=false)"}
	}
	if d.hostErr != nil {
		return nil, &ExecutionError{Diag: "scripting engine error", Err: d.hostErr}
	}

	if !expectCallback {
		return decodeRaw(d.payload), nil
	}
	if wrapped {
		return decodeEnvelope(d.payload)
	}
	// expectCallback with a self-wrapping script: the author owns the
	// payload shape, decode it as plain JSON.
	return decodeRaw(d.payload), nil
}

// decodeEnvelope parses the wrapper's {ok, data|error} contract.
func decodeEnvelope(payload string) (*Result, error) {
	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return &Result{Success: false, Raw: payload}, nil
	}
	if !env.OK {
		diag := env.Error
		if diag == "" {
			diag = "script reported failure without a message"
		}
		return nil, &ExecutionError{Diag: diag}
	}
	var value any
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &value); err != nil {
			return &Result{Success: false, Raw: payload}, nil
		}
	}
	return &Result{Success: true, Value: value, Raw: payload}, nil
}

// decodeRaw parses an author-shaped payload as plain JSON.
func decodeRaw(payload string) *Result {
	var value any
	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		return &Result{Success: false, Raw: payload}
	}
	return &Result{Success: true, Value: value, Raw: payload}
}

// wrap appends the callback plumbing around the caller's source. The
// caller's code runs inside an async IIFE so both plain values and
// promises funnel through the callback as one JSON envelope.
func wrap(source string) string {
	var b strings.Builder
	b.WriteString("(() => {")
	b.WriteString(" try {")
	b.WriteString(" const result = (async () => { ")
	b.WriteString(source)
	b.WriteString(" })();")
	b.WriteString(" if (result && typeof result.then === 'function') {")
	b.WriteString(" result.then(")
	b.WriteString(" value => " + CallbackName + "(JSON.stringify({ok: true, data: value})),")
	b.WriteString(" err => " + CallbackName + "(JSON.stringify({ok: false, error: err && err.message ? err.message : String(err)}))")
	b.WriteString(" );")
	b.WriteString(" } else {")
	b.WriteString(" " + CallbackName + "(JSON.stringify({ok: true, data: result}));")
	b.WriteString(" }")
	b.WriteString(" } catch (error) {")
	b.WriteString(" " + CallbackName + "(JSON.stringify({ok: false, error: error && error.message ? error.message : String(error)}));")
	b.WriteString(" }")
	b.WriteString("})();")
	return b.String()
}
