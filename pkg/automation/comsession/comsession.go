package comsession

import "os"

// DefaultProgID is the COM registration MediaMonkey 5/2024 installs.
const DefaultProgID = "SongsDB5.SDBApplication"

// ProgIDEnv overrides the automation entry point when more than one
// registration exists on the host (portable installs, older versions).
const ProgIDEnv = "MMBRIDGE_PROGID"

// Options configures session creation. The progID is read exactly once,
// here — a session never re-resolves its entry point.
type Options struct {
	// ProgID selects the automation entry point. Empty falls back to
	// ProgIDEnv, then DefaultProgID.
	ProgID string
}

func (o Options) progID() string {
	if o.ProgID != "" {
		return o.ProgID
	}
	if env := os.Getenv(ProgIDEnv); env != "" {
		return env
	}
	return DefaultProgID
}
