package order

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for orders, plus the narrow cross-table
// reads and writes checkout needs (brand existence, product snapshots,
// customer upsert, stock decrement).
type Repository interface {
	// CreateOrder persists a new order and its items atomically in a
	// transaction.
	CreateOrder(ctx context.Context, o *Order) error

	// GetOrderByID retrieves an order with its items by UUID.
	GetOrderByID(ctx context.Context, id string) (*Order, error)

	// ListByBrand returns all orders for a brand, newest first, optionally
	// filtered by status.
	ListByBrand(ctx context.Context, brandID string, status string) ([]*Order, error)

	// UpdateStatus advances an order to a new status.
	UpdateStatus(ctx context.Context, id string, status Status) error

	// CountPendingByPhone counts a phone number's unresolved PENDING orders.
	CountPendingByPhone(ctx context.Context, phone string) (int, error)

	// Stats aggregates the admin dashboard summary for one brand.
	Stats(ctx context.Context, brandID string) (*BrandStats, error)

	// GetBrand fetches the brand row checkout targets. sql.ErrNoRows means
	// the storefront is misconfigured.
	GetBrand(ctx context.Context, id uuid.UUID) (*BrandRef, error)

	// GetProduct fetches an active product in the brand's catalog.
	// sql.ErrNoRows means the client cart is stale.
	GetProduct(ctx context.Context, brandID, productID uuid.UUID) (*ProductSnapshot, error)

	// GetOrCreateCustomer resolves a customer identity by canonical phone,
	// creating one if needed and refreshing name/email when newly supplied.
	// It returns the customer id and their current email (possibly empty).
	GetOrCreateCustomer(ctx context.Context, phone, name, email string) (uuid.UUID, string, error)

	// DecrementStock subtracts qty from a product's on-hand quantity.
	// Best-effort, no floor check; failures are logged by the caller.
	DecrementStock(ctx context.Context, productID uuid.UUID, qty int) error
}
