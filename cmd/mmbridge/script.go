package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/osvalr/mmbridge/pkg/repl"
	"github.com/osvalr/mmbridge/pkg/script"
)

var (
	scriptEval    string
	scriptRaw     bool
	scriptTimeout string
)

var scriptCmd = &cobra.Command{
	Use:   "script [file.js]",
	Short: "Run JavaScript inside MediaMonkey and print the result",
	Long: `Run a script in the host scripting engine, with 'app' in scope.
The script's value is delivered back and printed as JSON:

  mmbridge script status.js
  mmbridge script -e "app.player.isPlaying"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadBridgeConfig()
	if err != nil {
		return err
	}

	source := scriptEval
	if source == "" {
		if len(args) == 0 {
			return fmt.Errorf("give a script file or use -e")
		}
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		source = string(data)
	}

	timeout, err := resolveTimeout(cfg.Timeout())
	if err != nil {
		return err
	}

	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := script.Run(ctx, sess, source, !scriptRaw)
	if err != nil {
		return err
	}
	if !result.Success {
		fmt.Fprintf(os.Stderr, "host returned a non-JSON payload:\n%s\n", result.Raw)
		os.Exit(1)
	}
	return printJSON(result.Value)
}

// resolveTimeout applies the --timeout override on top of the configured
// script timeout.
func resolveTimeout(configured time.Duration) (time.Duration, error) {
	if scriptTimeout == "" {
		return configured, nil
	}
	d, err := time.ParseDuration(scriptTimeout)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid --timeout %q: want a positive duration", scriptTimeout)
	}
	return d, nil
}

// --- repl ---

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive script console against the running application",
	RunE:  runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	cfg, err := loadBridgeConfig()
	if err != nil {
		return err
	}
	timeout, err := resolveTimeout(cfg.Timeout())
	if err != nil {
		return err
	}

	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	return repl.New(sess, timeout).Run(context.Background())
}
