//go:build !windows

package comsession

import (
	"fmt"
	"runtime"

	"github.com/osvalr/mmbridge/pkg/automation"
)

// New is the non-Windows stub: MediaMonkey's automation surface is COM,
// so a live session requires Windows. Everything above the session — the
// engines, the MCP layer, the CLI plumbing — builds and tests everywhere.
func New(opts Options) (automation.Session, error) {
	return nil, fmt.Errorf("MediaMonkey COM automation is not available on %s", runtime.GOOS)
}
