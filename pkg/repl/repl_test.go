package repl

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/osvalr/mmbridge/pkg/automation/automationtest"
)

func echoConsole() (*Console, *automationtest.Session) {
	sess := &automationtest.Session{
		ScriptFn: func(source string) (string, error) {
			return `{"ok": true, "data": {"volume": 72}}`, nil
		},
	}
	return New(sess, time.Second), sess
}

func TestEvalRunsScript(t *testing.T) {
	c, sess := echoConsole()

	out, quit := c.Eval(context.Background(), "app.player.volume")
	if quit {
		t.Fatal("script line must not quit the console")
	}
	if !strings.Contains(out, `"volume": 72`) {
		t.Errorf("output = %q, want the script value", out)
	}
	if len(sess.ScriptLog) != 1 {
		t.Errorf("submissions = %d, want 1", len(sess.ScriptLog))
	}
}

func TestEvalBlankLine(t *testing.T) {
	c, sess := echoConsole()

	out, quit := c.Eval(context.Background(), "   ")
	if out != "" || quit {
		t.Errorf("blank line: out=%q quit=%v", out, quit)
	}
	if len(sess.ScriptLog) != 0 {
		t.Error("blank line must not submit anything")
	}
}

func TestEvalQuit(t *testing.T) {
	c, _ := echoConsole()

	if _, quit := c.Eval(context.Background(), ":quit"); !quit {
		t.Error(":quit must exit")
	}
	if _, quit := c.Eval(context.Background(), ":q"); !quit {
		t.Error(":q must exit")
	}
}

func TestEvalRawToggle(t *testing.T) {
	c, sess := echoConsole()

	c.Eval(context.Background(), ":raw")
	c.Eval(context.Background(), "app.refreshUI()")
	if len(sess.ScriptLog) != 1 {
		t.Fatalf("submissions = %d, want 1", len(sess.ScriptLog))
	}
	if sess.ScriptLog[0] != "app.refreshUI()" {
		t.Errorf("raw mode must submit the source unmodified, got %q", sess.ScriptLog[0])
	}
	if !strings.Contains(c.buildPrompt(), "raw") {
		t.Errorf("prompt = %q, want raw marker", c.buildPrompt())
	}
}

func TestEvalTimeout(t *testing.T) {
	c, _ := echoConsole()

	out, _ := c.Eval(context.Background(), ":timeout 5s")
	if !strings.Contains(out, "5s") {
		t.Errorf("output = %q", out)
	}
	if c.timeout != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", c.timeout)
	}

	out, _ = c.Eval(context.Background(), ":timeout soon")
	if !strings.Contains(out, "soon") {
		t.Errorf("bad duration must be reported, got %q", out)
	}
	if c.timeout != 5*time.Second {
		t.Error("bad duration must not change the timeout")
	}
}

func TestEvalUnknownCommand(t *testing.T) {
	c, sess := echoConsole()

	out, quit := c.Eval(context.Background(), ":bogus")
	if quit {
		t.Fatal("unknown command must not quit")
	}
	if !strings.Contains(out, "Unknown command") {
		t.Errorf("output = %q", out)
	}
	if len(sess.ScriptLog) != 0 {
		t.Error("unknown command must not submit a script")
	}
}

func TestEvalScriptError(t *testing.T) {
	c := New(&automationtest.Session{
		ScriptFn: func(source string) (string, error) {
			return `{"ok": false, "error": "TypeError: app.nope is not a function"}`, nil
		},
	}, time.Second)

	out, _ := c.Eval(context.Background(), "app.nope()")
	if !strings.Contains(out, "TypeError") {
		t.Errorf("diagnostic lost: %q", out)
	}
}
