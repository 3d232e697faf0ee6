package main

import (
	"github.com/spf13/cobra"

	"github.com/osvalr/mmbridge/pkg/menu"
)

var (
	invokeStrategy      string
	invokeAllowDisabled bool
)

var invokeCmd = &cobra.Command{
	Use:   "invoke [scope] [caption...]",
	Short: "Resolve a menu path under a scope and invoke the final item",
	Long: `Resolve a chain of menu captions under a named scope (Menu_Tools,
Menu_Play, ...) and invoke the item it lands on. Captions are matched
after normalization, so accelerator markers and trailing ellipses in the
application's captions don't matter:

  mmbridge invoke Menu_Play play
  mmbridge invoke Menu_Tools "advanced search" --strategy startswith`,
	Args: cobra.MinimumNArgs(2),
	RunE: runInvoke,
}

func runInvoke(cmd *cobra.Command, args []string) error {
	cfg, err := loadBridgeConfig()
	if err != nil {
		return err
	}

	strategyName := invokeStrategy
	if strategyName == "" {
		strategyName = cfg.MenuMatch
	}
	strat, err := menu.ParseStrategy(strategyName)
	if err != nil {
		return err
	}

	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	result, err := menu.Invoke(sess, args[0], args[1:], strat, invokeAllowDisabled)
	if err != nil {
		return err
	}
	return printJSON(result)
}
