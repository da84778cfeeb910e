// Package delivery defines the contract every transport front end
// implements so the application can start them uniformly.
package delivery

import "context"

// Delivery is a serving component such as an HTTP server.
type Delivery interface {
	// Serve blocks until the component stops or fails.
	Serve(ctx context.Context) error
}
