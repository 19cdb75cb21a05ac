package pricing

import "errors"

// Area identifies the delivery zone a customer selected at checkout.
type Area string

const (
	AreaInside  Area = "inside"  // Dhaka metro
	AreaOutside Area = "outside" // rest of the country
	AreaUnset   Area = ""
)

// ErrAreaRequired is returned when a policy needs an explicit delivery area
// and the customer did not pick one.
var ErrAreaRequired = errors.New("delivery area is required")

// ErrUnknownArea is returned for area values outside inside/outside.
var ErrUnknownArea = errors.New("unknown delivery area")

// Line is one cart line as the pricing engine sees it. The engine is pure:
// it never looks anything up, callers resolve products first.
type Line struct {
	UnitPrice   float64
	Quantity    int
	IsPack      bool
	WeightGrams int
}

// Quote is the authoritative server-side price for a cart. The storefront
// mirrors this computation client-side for display only; the server value
// always wins.
type Quote struct {
	Subtotal       float64 `json:"subtotal"`
	DeliveryCharge float64 `json:"delivery_charge"`
	Total          float64 `json:"total"`
}

// Policy computes a Quote for one brand's cart. Each tenant brand gets its
// own policy value; handlers never branch on brand names.
type Policy interface {
	Quote(lines []Line, area Area) (Quote, error)
}

// FreeDelivery decides whether a cart qualifies for free delivery.
type FreeDelivery func(lines []Line, subtotal float64) bool

// AnyPack waives delivery when the cart holds at least one combo pack.
func AnyPack() FreeDelivery {
	return func(lines []Line, _ float64) bool {
		for _, l := range lines {
			if l.IsPack {
				return true
			}
		}
		return false
	}
}

// MinUnits waives delivery at n or more non-pack units.
func MinUnits(n int) FreeDelivery {
	return func(lines []Line, _ float64) bool {
		units := 0
		for _, l := range lines {
			if !l.IsPack {
				units += l.Quantity
			}
		}
		return units >= n
	}
}

// MinSubtotal waives delivery at or above a subtotal threshold.
func MinSubtotal(amount float64) FreeDelivery {
	return func(_ []Line, subtotal float64) bool {
		return subtotal >= amount
	}
}

// MinWeight waives delivery when any single line reaches a weight tier.
func MinWeight(grams int) FreeDelivery {
	return func(lines []Line, _ float64) bool {
		for _, l := range lines {
			if l.WeightGrams*l.Quantity >= grams {
				return true
			}
		}
		return false
	}
}

// resolveArea applies a brand's stance on a missing area selection. Most
// brands require an explicit choice; one legacy tenant assumes "inside",
// which stays a per-brand setting rather than a platform default.
func resolveArea(area Area, assumeInside bool) (Area, error) {
	switch area {
	case AreaInside, AreaOutside:
		return area, nil
	case AreaUnset:
		if assumeInside {
			return AreaInside, nil
		}
		return AreaUnset, ErrAreaRequired
	default:
		return AreaUnset, ErrUnknownArea
	}
}

func deliveryCharge(area Area, insideFee, outsideFee float64, free FreeDelivery, lines []Line, subtotal float64) float64 {
	if free != nil && free(lines, subtotal) {
		return 0
	}
	if area == AreaOutside {
		return outsideFee
	}
	return insideFee
}

func round2(v float64) float64 {
	return float64(int(v*100+0.5)) / 100
}
