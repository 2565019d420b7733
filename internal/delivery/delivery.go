// Package delivery defines the contract every transport entry point fulfils.
package delivery

import "context"

// Delivery is a serving surface of the application (HTTP today). Serve blocks
// until the server stops; shutdown happens through the lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
