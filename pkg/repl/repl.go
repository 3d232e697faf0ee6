// Package repl implements the interactive script console against a live
// MediaMonkey session.
package repl

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/osvalr/mmbridge/pkg/automation"
	"github.com/osvalr/mmbridge/pkg/script"
)

// Console is an interactive prompt that submits each line to the host
// scripting engine and prints the callback payload.
type Console struct {
	session automation.Session
	timeout time.Duration
	raw     bool
	output  io.Writer
}

// New creates a console bound to a session. timeout bounds each script run.
func New(sess automation.Session, timeout time.Duration) *Console {
	return &Console{
		session: sess,
		timeout: timeout,
		output:  os.Stdout,
	}
}

// Run starts the interactive loop. It returns on :quit, EOF, or interrupt.
func (c *Console) Run(ctx context.Context) error {
	commands := []string{":raw", ":timeout", ":help", ":quit"}

	var completer = readline.NewPrefixCompleter()
	for _, cmd := range commands {
		completer.Children = append(completer.Children,
			readline.PcItem(cmd))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          c.buildPrompt(),
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintf(c.output, "mmbridge script console — timeout=%s\n", c.timeout)
	fmt.Fprintf(c.output, "Each line runs as JavaScript inside MediaMonkey. Type ':help' for commands.\n\n")

	for {
		rl.SetPrompt(c.buildPrompt())
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt || err == io.EOF {
				return nil
			}
			return err
		}

		out, quit := c.Eval(ctx, line)
		if out != "" {
			fmt.Fprintln(c.output, out)
		}
		if quit {
			return nil
		}
	}
}

// Eval handles one console line and returns the text to print plus whether
// the console should exit.
func (c *Console) Eval(ctx context.Context, line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}

	if strings.HasPrefix(line, ":") {
		parts := strings.Fields(line)
		switch parts[0] {
		case ":quit", ":q":
			return "Exiting console.", true
		case ":help", ":?":
			return helpText, false
		case ":raw":
			c.raw = !c.raw
			if c.raw {
				return "raw mode on — scripts run without the callback wrapper", false
			}
			return "raw mode off — script values are delivered back", false
		case ":timeout":
			if len(parts) != 2 {
				return fmt.Sprintf("timeout is %s; use ':timeout 10s' to change it", c.timeout), false
			}
			d, err := time.ParseDuration(parts[1])
			if err != nil || d <= 0 {
				return fmt.Sprintf("not a positive duration: %q", parts[1]), false
			}
			c.timeout = d
			return fmt.Sprintf("timeout set to %s", d), false
		default:
			return fmt.Sprintf("Unknown command: %q. Type ':help' for available commands.", parts[0]), false
		}
	}

	return c.runScript(ctx, line), false
}

func (c *Console) runScript(ctx context.Context, source string) string {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	result, err := script.Run(ctx, c.session, source, !c.raw)
	if err != nil {
		return fmt.Sprintf("Error: %v", err)
	}
	if !result.Success {
		return fmt.Sprintf("host returned a non-JSON payload: %s", result.Raw)
	}
	if result.Value == nil {
		return "(no value)"
	}

	data, err := json.MarshalIndent(result.Value, "", "  ")
	if err != nil {
		return result.Raw
	}
	return string(data)
}

func (c *Console) buildPrompt() string {
	if c.raw {
		return fmt.Sprintf("mm[raw %s]> ", c.timeout)
	}
	return fmt.Sprintf("mm[%s]> ", c.timeout)
}

const helpText = `Commands:
  :raw           toggle raw mode (submit source without the callback wrapper)
  :timeout <d>   set the per-script timeout (e.g. :timeout 10s)
  :help          show this help
  :quit          exit the console

Anything else is JavaScript, run inside MediaMonkey with 'app' in scope.`
