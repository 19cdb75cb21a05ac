package catalog

import "context"

// Repository defines data access for brand catalogs.
type Repository interface {
	// Create persists a new product and its gallery images in a transaction.
	Create(ctx context.Context, p *Product) error

	// GetByID retrieves a product with its images by UUID.
	GetByID(ctx context.Context, id string) (*Product, error)

	// ListByBrand returns a brand's products, optionally filtered by category
	// and restricted to active listings.
	ListByBrand(ctx context.Context, brandID string, category string, activeOnly bool) ([]*Product, error)

	// Update persists edits to an existing product.
	Update(ctx context.Context, p *Product) error

	// SetStock replaces a product's on-hand quantity.
	SetStock(ctx context.Context, id string, qty int) error

	// DecrementStock subtracts qty from a product's on-hand quantity. It is
	// best-effort: no floor check, callers log failures and reconcile
	// out-of-band.
	DecrementStock(ctx context.Context, id string, qty int) error
}
