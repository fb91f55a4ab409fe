// Package delivery defines the contract every transport surface
// (HTTP API, Pub/Sub worker) fulfills so main can run them uniformly.
package delivery

import "context"

// Delivery is a long-running transport server started by main and
// stopped through the fx lifecycle.
type Delivery interface {
	// Serve blocks until the server stops.
	Serve(ctx context.Context) error
}
