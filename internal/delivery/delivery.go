// Package delivery defines the contract every transport server implements.
package delivery

import "context"

// Delivery is a long-running server started by the application runtime.
type Delivery interface {
	// Serve blocks until the server stops or fails.
	Serve(ctx context.Context) error
}
