// Package lifecycle holds shared constants for component startup and
// shutdown coordination.
package lifecycle

import "time"

// DefaultTimeout bounds lifecycle hooks such as graceful shutdown and
// initial connectivity checks.
const DefaultTimeout = 10 * time.Second
