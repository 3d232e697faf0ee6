package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/osvalr/mmbridge/pkg/player"
)

var (
	nowPlayingLimit  int
	nowPlayingFilter string
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the player state and current track",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadBridgeConfig()
	if err != nil {
		return err
	}
	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	state, err := player.Snapshot(sess)
	if err != nil {
		return err
	}
	return printJSON(state)
}

var playbackCmd = &cobra.Command{
	Use:   "playback [action]",
	Short: "Drive playback: play, pause, toggle, stop, next, previous, shuffle, repeat, stop_after_current",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlayback,
}

func runPlayback(cmd *cobra.Command, args []string) error {
	action, err := player.ParseAction(args[0])
	if err != nil {
		return err
	}

	cfg, err := loadBridgeConfig()
	if err != nil {
		return err
	}
	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	state, err := player.Control(sess, action)
	if err != nil {
		return err
	}
	return printJSON(state)
}

var volumeCmd = &cobra.Command{
	Use:   "volume [level]",
	Short: "Set the master volume (0-100, clamped)",
	Args:  cobra.ExactArgs(1),
	RunE:  runVolume,
}

func runVolume(cmd *cobra.Command, args []string) error {
	level, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid volume %q: want a number", args[0])
	}

	cfg, err := loadBridgeConfig()
	if err != nil {
		return err
	}
	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	state, err := player.SetVolume(sess, level)
	if err != nil {
		return err
	}
	return printJSON(state)
}

var seekCmd = &cobra.Command{
	Use:   "seek [position-ms]",
	Short: "Seek within the current track (milliseconds)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSeek,
}

func runSeek(cmd *cobra.Command, args []string) error {
	pos, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid position %q: want milliseconds", args[0])
	}

	cfg, err := loadBridgeConfig()
	if err != nil {
		return err
	}
	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	state, err := player.Seek(sess, pos)
	if err != nil {
		return err
	}
	return printJSON(state)
}

var nowPlayingCmd = &cobra.Command{
	Use:   "now-playing",
	Short: "List the Now Playing queue",
	Long: `List the Now Playing queue, optionally filtered by an expression
over track fields:

  mmbridge now-playing --limit 20
  mmbridge now-playing --filter 'Genre == "Jazz" && Rating >= 80'`,
	RunE: runNowPlaying,
}

func runNowPlaying(cmd *cobra.Command, args []string) error {
	cfg, err := loadBridgeConfig()
	if err != nil {
		return err
	}
	sess, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	tracks, err := player.NowPlaying(sess, nowPlayingLimit)
	if err != nil {
		return err
	}
	if nowPlayingFilter != "" {
		tracks, err = player.Filter(tracks, nowPlayingFilter)
		if err != nil {
			return fmt.Errorf("filter: %w", err)
		}
	}
	return printJSON(map[string]any{
		"count":  len(tracks),
		"tracks": tracks,
	})
}
