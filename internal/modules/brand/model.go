package brand

import (
	"time"

	"github.com/google/uuid"
)

// Brand is a tenant storefront sharing the platform's code and database.
// Every product, order, and customer listing is partitioned by brand id.
type Brand struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	CustomDomain string    `json:"custom_domain,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterBrandRequest holds the data for registering a tenant brand.
type RegisterBrandRequest struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	CustomDomain string `json:"custom_domain,omitempty"`
}
