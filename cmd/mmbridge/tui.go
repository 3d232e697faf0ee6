package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/osvalr/mmbridge/pkg/tui"
)

var tuiRefresh time.Duration

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive now-playing dashboard",
	RunE:  runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadBridgeConfig()
	if err != nil {
		return err
	}
	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	return tui.Run(sess, tuiRefresh)
}
