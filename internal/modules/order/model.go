package order

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status represents the lifecycle state of an order. The storefront only
// ever creates PENDING orders; every later transition is admin-initiated.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// PaymentCOD is the only payment method across all brands: cash collected
// at delivery.
const PaymentCOD = "COD"

// Order represents a customer's placed order with a brand. Customer fields
// are snapshotted at checkout time; ShippingAddress keeps the same data as
// a JSON blob on top of the normalized columns, deliberate redundancy kept
// from the original data model.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	BrandID         uuid.UUID       `json:"brand_id"`
	CustomerID      uuid.UUID       `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	Phone           string          `json:"phone"`
	Address         string          `json:"address"`
	Area            string          `json:"area"`
	Subtotal        float64         `json:"subtotal"`
	DeliveryCharge  float64         `json:"delivery_charge"`
	Total           float64         `json:"total"`
	PaymentMethod   string          `json:"payment_method"`
	Status          Status          `json:"status"`
	ShippingAddress json.RawMessage `json:"shipping_address,omitempty"`
	Items           []*OrderItem    `json:"items,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem is a single line item within an order. Name, unit price, and
// image are denormalized at purchase time so historical orders render
// correctly even after catalog edits.
type OrderItem struct {
	ID            uuid.UUID `json:"id"`
	OrderID       uuid.UUID `json:"order_id"`
	ProductID     uuid.UUID `json:"product_id"`
	Name          string    `json:"name"`
	ImageURL      string    `json:"image_url,omitempty"`
	UnitPrice     float64   `json:"unit_price"`
	Quantity      int       `json:"quantity"`
	SelectedSize  string    `json:"selected_size,omitempty"`
	SelectedColor string    `json:"selected_color,omitempty"`
	LineTotal     float64   `json:"line_total"`
}

// CartLine is one item of an incoming checkout request. VariantKey carries
// the buyer's variant selection as its own field end to end.
type CartLine struct {
	ProductID     string `json:"product_id"`
	VariantKey    string `json:"variant_key,omitempty"`
	Quantity      int    `json:"quantity"`
	SelectedSize  string `json:"selected_size,omitempty"`
	SelectedColor string `json:"selected_color,omitempty"`
}

// Canonical returns the line with any legacy composite product id
// ("<id>--<variant>", an old client convention for smuggling the variant
// selection into the id) split into the tagged form. New clients send
// VariantKey directly and the id passes through untouched.
func (l CartLine) Canonical() CartLine {
	if l.VariantKey != "" {
		return l
	}
	if base, variant, ok := strings.Cut(l.ProductID, "--"); ok {
		l.ProductID = base
		l.VariantKey = variant
	}
	return l
}

// CheckoutCustomer is the contact block of a checkout submission.
type CheckoutCustomer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Area    string `json:"area,omitempty"`
	Email   string `json:"email,omitempty"`
}

// CheckoutRequest is the payload of POST /api/v1/checkout. Client-computed
// totals are accepted for backwards compatibility but never trusted; pricing
// is recomputed server-side.
type CheckoutRequest struct {
	BrandID        string           `json:"brand_id"`
	Customer       CheckoutCustomer `json:"customer"`
	Items          []CartLine       `json:"items"`
	Total          float64          `json:"total,omitempty"`
	DeliveryCharge float64          `json:"delivery_charge,omitempty"`
}

// CheckoutResponse is the storefront-facing result envelope.
type CheckoutResponse struct {
	Success bool   `json:"success"`
	OrderID string `json:"order_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// UpdateStatusRequest is the payload for advancing an order's status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// BrandStats is the admin dashboard summary for one brand.
type BrandStats struct {
	TotalOrders    int            `json:"total_orders"`
	OrdersByStatus map[Status]int `json:"orders_by_status"`
	Revenue        float64        `json:"revenue"`
	UnitsSold      int            `json:"units_sold"`
	Customers      int            `json:"customers"`
}

// BrandRef is the slice of a brand row checkout needs.
type BrandRef struct {
	ID   uuid.UUID
	Name string
	Slug string
}

// ProductSnapshot is the slice of a product row checkout needs to validate,
// price, and denormalize a cart line.
type ProductSnapshot struct {
	ID          uuid.UUID
	Name        string
	UnitPrice   float64
	ImageURL    string
	IsPack      bool
	WeightGrams int
	Variants    json.RawMessage
}

// VariantImage resolves the image for a variant key from the product's
// structured variants map, falling back to the product image.
func (p ProductSnapshot) VariantImage(key string) string {
	if key == "" || len(p.Variants) == 0 {
		return p.ImageURL
	}
	var variants map[string]struct {
		Image    string `json:"image"`
		Quantity int    `json:"quantity"`
	}
	if err := json.Unmarshal(p.Variants, &variants); err != nil {
		return p.ImageURL
	}
	if v, ok := variants[key]; ok && v.Image != "" {
		return v.Image
	}
	return p.ImageURL
}
