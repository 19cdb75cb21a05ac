package catalog

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Product is one sellable item in a brand's catalog. Variants carries the
// structured color→image→quantity map some storefronts use; Sizes and Colors
// are the flat option lists the rest use.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	BrandID     uuid.UUID       `json:"brand_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	UnitPrice   float64         `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	ImageURL    string          `json:"image_url,omitempty"`
	Sizes       []string        `json:"sizes,omitempty"`
	Colors      []string        `json:"colors,omitempty"`
	Variants    json.RawMessage `json:"variants,omitempty"`
	IsPack      bool            `json:"is_pack"`
	WeightGrams int             `json:"weight_grams,omitempty"`
	IsActive    bool            `json:"is_active"`
	Images      []*ProductImage `json:"images,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductImage is one gallery image of a product.
type ProductImage struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	URL       string    `json:"url"`
	Position  int       `json:"position"`
}

// RegisterProductRequest holds the data for the admin "register product"
// action. ImageURLs become the product's gallery in order.
type RegisterProductRequest struct {
	BrandID     string          `json:"brand_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category,omitempty"`
	UnitPrice   float64         `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	ImageURL    string          `json:"image_url,omitempty"`
	Sizes       []string        `json:"sizes,omitempty"`
	Colors      []string        `json:"colors,omitempty"`
	Variants    json.RawMessage `json:"variants,omitempty"`
	IsPack      bool            `json:"is_pack,omitempty"`
	WeightGrams int             `json:"weight_grams,omitempty"`
	ImageURLs   []string        `json:"image_urls,omitempty"`
}

// SetStockRequest replaces a product's on-hand quantity.
type SetStockRequest struct {
	Quantity int `json:"quantity"`
}

// InventoryRow is one line of the admin console's inventory view.
type InventoryRow struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Category  string          `json:"category,omitempty"`
	UnitPrice float64         `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	IsActive  bool            `json:"is_active"`
	Variants  json.RawMessage `json:"variants,omitempty"`
}
