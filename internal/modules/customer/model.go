package customer

import (
	"time"

	"github.com/google/uuid"
)

// Customer is a storefront buyer. Guest checkout creates these rows on the
// fly; the canonical phone number (8801XXXXXXXXX) is the identity key, email
// is optional and only present when a session supplied one.
type Customer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BrandCustomer is one row of the admin console's customer view: a customer
// together with their order history summary for that brand.
type BrandCustomer struct {
	Customer
	OrderCount int     `json:"order_count"`
	TotalSpent float64 `json:"total_spent"`
	LastOrder  time.Time `json:"last_order"`
}
