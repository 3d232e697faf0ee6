package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/osvalr/mmbridge/pkg/automation"
	"github.com/osvalr/mmbridge/pkg/automation/comsession"
	"github.com/osvalr/mmbridge/pkg/schema"
)

// Version is set at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mmbridge",
	Short: "MediaMonkey automation bridge",
	Long:  "mmbridge — menu invocation, scripting, settings, and playback control for a running MediaMonkey instance.",
}

var configPath string

// loadBridgeConfig reads the bridge configuration. An explicit --config
// path must exist; otherwise mmbridge.yaml is picked up from the working
// directory when present, and the built-in defaults apply when it isn't.
func loadBridgeConfig() (*schema.Config, error) {
	path := configPath
	if path == "" {
		if _, err := os.Stat("mmbridge.yaml"); err != nil {
			return schema.Default(), nil
		}
		path = "mmbridge.yaml"
	}

	cfg, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}
	if errs := schema.Validate(cfg); schema.HasErrors(errs) {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "  [%s] %s: %s\n", e.Phase, e.Path, e.Message)
		}
		return nil, fmt.Errorf("invalid configuration %s", path)
	}
	return cfg, nil
}

// openSession connects to the running application. The caller owns the
// returned session and must Close it.
func openSession(cfg *schema.Config) (automation.Session, error) {
	sess, err := comsession.New(comsession.Options{ProgID: cfg.ProgID})
	if err != nil {
		return nil, fmt.Errorf("connect to MediaMonkey: %w", err)
	}
	return sess, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// --- version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("mmbridge %s (build: %s)\n", version, commit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to mmbridge.yaml (default: ./mmbridge.yaml if present)")

	// invoke flags
	invokeCmd.Flags().StringVar(&invokeStrategy, "strategy", "", "Caption match strategy: exact, startswith, or contains")
	invokeCmd.Flags().BoolVar(&invokeAllowDisabled, "allow-disabled", false, "Invoke the item even when it reports disabled")

	// script flags
	scriptCmd.Flags().StringVarP(&scriptEval, "eval", "e", "", "Run this source instead of reading a file")
	scriptCmd.Flags().BoolVar(&scriptRaw, "raw", false, "Submit the source without the callback wrapper")
	scriptCmd.Flags().StringVar(&scriptTimeout, "timeout", "", "Per-script timeout (e.g. 10s); defaults to the configured value")

	// config subcommands & flags
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configValidateCmd)
	configGetCmd.Flags().StringVar(&configType, "type", "string", "Value type: string, integer, or boolean")
	configSetCmd.Flags().StringVar(&configType, "type", "string", "Value type: string, integer, or boolean")
	configSetCmd.Flags().StringVar(&configPersist, "persist", "", "Persistence mode: none, flush, or apply")

	// playback flags
	nowPlayingCmd.Flags().IntVar(&nowPlayingLimit, "limit", -1, "Maximum tracks to list (default: whole queue)")
	nowPlayingCmd.Flags().StringVar(&nowPlayingFilter, "filter", "", "Boolean expression over track fields")

	// schema subcommands & flags
	schemaCmd.AddCommand(schemaExportCmd)
	schemaExportCmd.Flags().StringVar(&schemaKind, "kind", "config", "What to export: config or a result kind (see --list)")
	schemaExportCmd.Flags().BoolVar(&schemaList, "list", false, "List exportable result kinds")

	// repl flags
	replCmd.Flags().StringVar(&scriptTimeout, "timeout", "", "Per-script timeout (e.g. 10s); defaults to the configured value")

	// tui flags
	tuiCmd.Flags().DurationVar(&tuiRefresh, "refresh", 0, "Dashboard refresh interval (default 1s)")

	// root subcommands
	rootCmd.AddCommand(invokeCmd)
	rootCmd.AddCommand(scriptCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(playbackCmd)
	rootCmd.AddCommand(volumeCmd)
	rootCmd.AddCommand(seekCmd)
	rootCmd.AddCommand(nowPlayingCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
}
