package script_test

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/osvalr/mmbridge/pkg/automation/automationtest"
	"github.com/osvalr/mmbridge/pkg/script"
)

// echoHost simulates the host engine: it "executes" the wrapped script by
// delivering a fixed payload through the callback.
func echoHost(payload string) *automationtest.Session {
	return &automationtest.Session{
		ScriptFn: func(source string) (string, error) { return payload, nil },
	}
}

func TestRunRoundTripsJSONObject(t *testing.T) {
	sess := echoHost(`{"ok": true, "data": {"title": "Blue Train", "rating": 90}}`)

	res, err := script.Run(context.Background(), sess, "return currentTrack();", true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Success {
		t.Fatal("expected Success=true")
	}
	want := map[string]any{"title": "Blue Train", "rating": float64(90)}
	if !reflect.DeepEqual(res.Value, want) {
		t.Errorf("Value = %#v, want %#v", res.Value, want)
	}
}

func TestRunWrapsSourceWithCallback(t *testing.T) {
	sess := echoHost(`{"ok": true, "data": null}`)

	if _, err := script.Run(context.Background(), sess, "app.player.playAsync();", true); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(sess.ScriptLog) != 1 {
		t.Fatalf("submitted %d scripts, want 1", len(sess.ScriptLog))
	}
	submitted := sess.ScriptLog[0]
	if !strings.Contains(submitted, script.CallbackName) {
		t.Error("wrapped script should invoke the callback")
	}
	if !strings.Contains(submitted, "app.player.playAsync();") {
		t.Error("wrapped script should embed the original source")
	}
}

func TestRunDoesNotRewrapSelfCallingScript(t *testing.T) {
	source := script.CallbackName + `(JSON.stringify({done: true}));`
	sess := echoHost(`{"done": true}`)

	res, err := script.Run(context.Background(), sess, source, true)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sess.ScriptLog[0] != source {
		t.Error("self-calling script must be submitted unmodified")
	}
	want := map[string]any{"done": true}
	if !reflect.DeepEqual(res.Value, want) {
		t.Errorf("Value = %#v, want %#v", res.Value, want)
	}
}

func TestRunNoCallbackModeSubmitsUnmodified(t *testing.T) {
	sess := echoHost(`[1, 2, 3]`)

	res, err := script.Run(context.Background(), sess, "someScript();", false)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sess.ScriptLog[0] != "someScript();" {
		t.Errorf("submitted %q, want unmodified source", sess.ScriptLog[0])
	}
	if !res.Success {
		t.Error("expected Success=true")
	}
}

func TestRunTimesOutWhenScriptNeverDelivers(t *testing.T) {
	// ScriptFn nil: the script is accepted but the callback never fires.
	sess := &automationtest.Session{}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := script.Run(ctx, sess, "while(true){}", false)
	var execErr *script.ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("error = %v, want ExecutionError", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error chain should carry the deadline: %v", err)
	}
}

func TestRunMalformedPayloadIsDataNotError(t *testing.T) {
	sess := echoHost(`undefined`)

	res, err := script.Run(context.Background(), sess, "return broken();", true)
	if err != nil {
		t.Fatalf("malformed output must not raise: %v", err)
	}
	if res.Success {
		t.Error("expected Success=false")
	}
	if res.Raw != "undefined" {
		t.Errorf("Raw = %q, want the verbatim payload", res.Raw)
	}
}

func TestRunScriptErrorEnvelope(t *testing.T) {
	sess := echoHost(`{"ok": false, "error": "ReferenceError: foo is not defined"}`)

	_, err := script.Run(context.Background(), sess, "foo();", true)
	var execErr *script.ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("error = %v, want ExecutionError", err)
	}
	if !strings.Contains(execErr.Diag, "ReferenceError") {
		t.Errorf("diagnostic not preserved: %q", execErr.Diag)
	}
}

func TestRunSubmissionFailure(t *testing.T) {
	sess := &automationtest.Session{SubmitErr: errors.New("COM server gone")}

	_, err := script.Run(context.Background(), sess, "noop();", true)
	var execErr *script.ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("error = %v, want ExecutionError", err)
	}
	if !errors.Is(err, sess.SubmitErr) {
		t.Error("submission diagnostic should be preserved")
	}
}

func TestRunRejectsDuplicateDelivery(t *testing.T) {
	sess := echoHost(`{"ok": true, "data": 1}`)
	sess.DeliverTwice = true

	_, err := script.Run(context.Background(), sess, "return 1;", true)
	var execErr *script.ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("error = %v, want ExecutionError for duplicate delivery", err)
	}
	if !strings.Contains(execErr.Diag, "more than once") {
		t.Errorf("unexpected diagnostic: %q", execErr.Diag)
	}
}

func TestRunRejectsEmptySource(t *testing.T) {
	sess := echoHost(`{}`)
	if _, err := script.Run(context.Background(), sess, "   ", true); err == nil {
		t.Error("expected error for empty source")
	}
	if len(sess.ScriptLog) != 0 {
		t.Error("nothing should have been submitted")
	}
}
