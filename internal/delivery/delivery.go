// Package delivery defines the contract every transport entrypoint satisfies.
package delivery

import "context"

// Delivery is a long-running transport (HTTP server today). Serve blocks
// until the transport stops; shutdown is driven by the Fx lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
