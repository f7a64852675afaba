// Package ports defines the contracts between the application core and its
// infrastructure: persistence, blob storage and receipt rendering.
package ports

import (
	"context"

	"topup/internal/core/domain/model/kernel"
	"topup/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// Returns errs.ErrObjectNotFound when the order does not exist.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound when absent.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Delete removes an order permanently. Deleting a missing id is not an error.
	Delete(ctx context.Context, id kernel.UUID) error

	// ListByBuyer returns the buyer's orders oldest first.
	ListByBuyer(ctx context.Context, buyerID kernel.UUID) ([]*order.Order, error)

	// ListAll returns every order oldest first.
	ListAll(ctx context.Context) ([]*order.Order, error)

	// ListProofRefs returns the proof filename of every order that has one, keyed by order id.
	ListProofRefs(ctx context.Context) (map[kernel.UUID]order.ProofFilename, error)
}
