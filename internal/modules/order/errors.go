package order

import "errors"

// Checkout rejection reasons. Handlers map these to status codes; the
// message text is user-facing and surfaced verbatim by the storefront.
var (
	ErrEmptyCart       = errors.New("your cart is empty")
	ErrNameRequired    = errors.New("name is required")
	ErrInvalidPhone    = errors.New("please enter a valid Bangladeshi mobile number")
	ErrAddressTooShort = errors.New("please enter your full delivery address")
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")

	ErrRateLimited    = errors.New("too many checkout attempts, please try again later")
	ErrTooManyPending = errors.New("too many unresolved orders for this phone number, please wait for earlier orders to be processed")

	// ErrBrandNotConfigured signals an operational/seed defect, not a user
	// error: the storefront submitted a brand id with no matching row.
	ErrBrandNotConfigured = errors.New("storefront is not configured, please contact support")

	// ErrProductUnavailable covers stale carts that reference deleted or
	// deactivated products.
	ErrProductUnavailable = errors.New("an item in your cart is no longer available, please refresh your cart and try again")

	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid status transition")
)
