// Package lifecycle holds shared lifecycle constants.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown and background backend calls.
const DefaultTimeout = 30 * time.Second
