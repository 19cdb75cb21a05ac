package order

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/asifjoardar/dokan-backend/internal/email"
	"github.com/asifjoardar/dokan-backend/internal/modules/pricing"
)

// Service defines the order management business logic.
type Service interface {
	// Checkout validates a storefront submission, recomputes authoritative
	// pricing, and persists the order atomically. clientIP feeds the
	// per-origin rate limit and may be empty.
	Checkout(ctx context.Context, req CheckoutRequest, clientIP string) (*Order, error)

	// GetOrder retrieves a full order with its items by UUID.
	GetOrder(ctx context.Context, id string) (*Order, error)

	// ListBrandOrders returns a brand's orders, optionally filtered by status.
	ListBrandOrders(ctx context.Context, brandID string, status string) ([]*Order, error)

	// UpdateStatus advances an order through the admin-driven lifecycle.
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error)

	// Stats returns the admin dashboard summary for one brand.
	Stats(ctx context.Context, brandID string) (*BrandStats, error)
}

type service struct {
	repo     Repository
	policies *pricing.Registry
	guard    *Guard
	mailer   email.Sender // nil disables confirmations
}

// NewService creates a new order service.
func NewService(repo Repository, policies *pricing.Registry, guard *Guard, mailer email.Sender) Service {
	return &service{
		repo:     repo,
		policies: policies,
		guard:    guard,
		mailer:   mailer,
	}
}

// validTransitions defines the allowed status state machine. CANCELLED is
// reachable from every non-terminal state; the storefront never calls this,
// only brand admins do.
var validTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func (s *service) Checkout(ctx context.Context, req CheckoutRequest, clientIP string) (*Order, error) {
	// ── Guard: network origin first, before any parsing ──────────────────────
	if !s.guard.AllowIP(clientIP) {
		return nil, ErrRateLimited
	}

	// ── Validate user input; nothing below runs for malformed submissions ────
	if err := validateCheckout(req); err != nil {
		return nil, err
	}
	phone, err := NormalizePhone(req.Customer.Phone)
	if err != nil {
		return nil, err
	}

	// ── Guard: per-phone window and pending-order ceiling ────────────────────
	if !s.guard.AllowPhone(phone) {
		return nil, ErrRateLimited
	}
	pending, err := s.repo.CountPendingByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending orders: %w", err)
	}
	if pending >= s.guard.MaxPending() {
		return nil, ErrTooManyPending
	}

	// ── Resolve or create the customer identity by canonical phone ───────────
	// Runs before the brand and product checks: a checkout that later fails
	// on a stale cart still records the contact.
	customerID, customerEmail, err := s.repo.GetOrCreateCustomer(ctx, phone, strings.TrimSpace(req.Customer.Name), req.Customer.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve customer: %w", err)
	}

	// ── Brand must exist; a miss is a deployment/seed defect ─────────────────
	brandID, err := uuid.Parse(req.BrandID)
	if err != nil {
		return nil, ErrBrandNotConfigured
	}
	brand, err := s.repo.GetBrand(ctx, brandID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBrandNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load brand: %w", err)
	}

	// ── Resolve every cart line; any miss aborts the whole order ─────────────
	type resolvedLine struct {
		line    CartLine
		product *ProductSnapshot
	}
	resolved := make([]resolvedLine, 0, len(req.Items))
	for _, raw := range req.Items {
		line := raw.Canonical()
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, ErrProductUnavailable
		}
		p, err := s.repo.GetProduct(ctx, brandID, productID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductUnavailable
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load product: %w", err)
		}
		resolved = append(resolved, resolvedLine{line: line, product: p})
	}

	// ── Authoritative pricing; client totals are ignored ─────────────────────
	lines := make([]pricing.Line, 0, len(resolved))
	for _, rl := range resolved {
		lines = append(lines, pricing.Line{
			UnitPrice:   rl.product.UnitPrice,
			Quantity:    rl.line.Quantity,
			IsPack:      rl.product.IsPack,
			WeightGrams: rl.product.WeightGrams,
		})
	}
	area := pricing.Area(strings.ToLower(strings.TrimSpace(req.Customer.Area)))
	quote, err := s.policies.For(brand.Slug).Quote(lines, area)
	if err != nil {
		return nil, err
	}

	// ── Build and persist the order atomically ───────────────────────────────
	o := &Order{
		ID:             uuid.New(),
		BrandID:        brandID,
		CustomerID:     customerID,
		CustomerName:   strings.TrimSpace(req.Customer.Name),
		Phone:          phone,
		Address:        strings.TrimSpace(req.Customer.Address),
		Area:           string(area),
		Subtotal:       quote.Subtotal,
		DeliveryCharge: quote.DeliveryCharge,
		Total:          quote.Total,
		PaymentMethod:  PaymentCOD,
		Status:         StatusPending,
	}
	o.ShippingAddress, _ = json.Marshal(map[string]string{
		"name":    o.CustomerName,
		"phone":   o.Phone,
		"address": o.Address,
		"area":    o.Area,
	})
	for _, rl := range resolved {
		unitPrice := rl.product.UnitPrice
		o.Items = append(o.Items, &OrderItem{
			ID:            uuid.New(),
			OrderID:       o.ID,
			ProductID:     rl.product.ID,
			Name:          rl.product.Name,
			ImageURL:      rl.product.VariantImage(rl.line.VariantKey),
			UnitPrice:     unitPrice,
			Quantity:      rl.line.Quantity,
			SelectedSize:  rl.line.SelectedSize,
			SelectedColor: rl.line.SelectedColor,
			LineTotal:     unitPrice * float64(rl.line.Quantity),
		})
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	// ── Post-commit best-effort steps; never fail the placed order ───────────
	for _, item := range o.Items {
		if err := s.repo.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			log.Printf("[WARN] stock decrement failed for product %s (order %s): %v", item.ProductID, o.ID, err)
		}
	}
	if s.mailer != nil && customerEmail != "" {
		go s.sendConfirmation(customerEmail, brand.Name, o)
	}

	return o, nil
}

func (s *service) sendConfirmation(to, brandName string, o *Order) {
	c := email.Confirmation{
		BrandName:      brandName,
		OrderID:        o.ID.String(),
		CustomerName:   o.CustomerName,
		Subtotal:       o.Subtotal,
		DeliveryCharge: o.DeliveryCharge,
		Total:          o.Total,
	}
	for _, item := range o.Items {
		c.Items = append(c.Items, email.Item{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	if err := s.mailer.SendOrderConfirmation(to, c); err != nil {
		log.Printf("[WARN] confirmation email failed for order %s: %v", o.ID, err)
	}
}

func (s *service) GetOrder(ctx context.Context, id string) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *service) ListBrandOrders(ctx context.Context, brandID string, status string) ([]*Order, error) {
	if _, err := uuid.Parse(brandID); err != nil {
		return nil, fmt.Errorf("invalid brand_id: %w", err)
	}
	if status != "" {
		if _, ok := validTransitions[Status(strings.ToUpper(status))]; !ok {
			return nil, fmt.Errorf("invalid status filter %q", status)
		}
	}
	return s.repo.ListByBrand(ctx, brandID, strings.ToUpper(status))
}

func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, ErrOrderNotFound
	}

	newStatus := Status(strings.ToUpper(strings.TrimSpace(req.Status)))
	allowed := false
	for _, next := range validTransitions[o.Status] {
		if next == newStatus {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, o.Status, newStatus)
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	o.Status = newStatus
	return o, nil
}

func (s *service) Stats(ctx context.Context, brandID string) (*BrandStats, error) {
	if _, err := uuid.Parse(brandID); err != nil {
		return nil, fmt.Errorf("invalid brand_id: %w", err)
	}
	return s.repo.Stats(ctx, brandID)
}
