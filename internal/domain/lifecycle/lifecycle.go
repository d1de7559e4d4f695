// Package lifecycle holds shared lifecycle constants for startup and
// shutdown hooks.
package lifecycle

import "time"

// DefaultTimeout bounds graceful startup/shutdown work such as server
// drain and database pings.
const DefaultTimeout = 10 * time.Second
