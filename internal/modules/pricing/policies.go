package pricing

import "fmt"

// Flat prices every line at its linear unit price with a two-tier flat
// delivery fee.
type Flat struct {
	InsideFee    float64
	OutsideFee   float64
	Free         FreeDelivery
	AssumeInside bool
}

func (p Flat) Quote(lines []Line, area Area) (Quote, error) {
	if len(lines) == 0 {
		return Quote{}, nil
	}
	area, err := resolveArea(area, p.AssumeInside)
	if err != nil {
		return Quote{}, err
	}
	var subtotal float64
	for _, l := range lines {
		subtotal += l.UnitPrice * float64(l.Quantity)
	}
	subtotal = round2(subtotal)
	charge := deliveryCharge(area, p.InsideFee, p.OutsideFee, p.Free, lines, subtotal)
	return Quote{
		Subtotal:       subtotal,
		DeliveryCharge: charge,
		Total:          round2(subtotal + charge),
	}, nil
}

// StepTable prices quantities from an explicit bundle table instead of a
// linear unit price: Prices[i] is the flat price for i+1 units of a line,
// and full groups of GroupSize units repeat at Prices[GroupSize-1].
// A table {GroupSize: 3, Prices: [550, 1000, 1400]} prices 1 unit at 550,
// any 2 at 1000, any 3 at 1400, 4 at 1400+550, 7 at 2*1400+550, and so on.
// Lines flagged IsPack bypass the table and sell at their own flat price.
type StepTable struct {
	GroupSize    int
	Prices       []float64
	InsideFee    float64
	OutsideFee   float64
	Free         FreeDelivery
	AssumeInside bool
}

func (p StepTable) Quote(lines []Line, area Area) (Quote, error) {
	if len(lines) == 0 {
		return Quote{}, nil
	}
	if p.GroupSize < 1 || len(p.Prices) < p.GroupSize {
		return Quote{}, fmt.Errorf("step table misconfigured: group size %d with %d prices", p.GroupSize, len(p.Prices))
	}
	area, err := resolveArea(area, p.AssumeInside)
	if err != nil {
		return Quote{}, err
	}
	var subtotal float64
	for _, l := range lines {
		if l.IsPack {
			subtotal += l.UnitPrice * float64(l.Quantity)
			continue
		}
		subtotal += p.priceFor(l.Quantity)
	}
	subtotal = round2(subtotal)
	charge := deliveryCharge(area, p.InsideFee, p.OutsideFee, p.Free, lines, subtotal)
	return Quote{
		Subtotal:       subtotal,
		DeliveryCharge: charge,
		Total:          round2(subtotal + charge),
	}, nil
}

// priceFor derives the bundle price for q units from the table alone.
func (p StepTable) priceFor(q int) float64 {
	if q <= 0 {
		return 0
	}
	groups := q / p.GroupSize
	rem := q % p.GroupSize
	total := float64(groups) * p.Prices[p.GroupSize-1]
	if rem > 0 {
		total += p.Prices[rem-1]
	}
	return total
}

// Registry maps brand slugs to their pricing policies. Brands without an
// entry fall back to the default policy.
type Registry struct {
	policies map[string]Policy
	fallback Policy
}

// NewRegistry creates a registry with a fallback policy for unlisted brands.
func NewRegistry(fallback Policy) *Registry {
	return &Registry{
		policies: make(map[string]Policy),
		fallback: fallback,
	}
}

// Register binds a brand slug to a policy, replacing any previous binding.
func (r *Registry) Register(slug string, p Policy) {
	r.policies[slug] = p
}

// For returns the policy for a brand slug.
func (r *Registry) For(slug string) Policy {
	if p, ok := r.policies[slug]; ok {
		return p
	}
	return r.fallback
}
