// Package lifecycle holds shared process lifecycle constants.
package lifecycle

import "time"

// DefaultTimeout bounds graceful-shutdown work such as draining in-flight
// HTTP requests and closing database pools.
const DefaultTimeout = 30 * time.Second
