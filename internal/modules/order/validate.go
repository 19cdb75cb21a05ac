package order

import (
	"regexp"
	"strings"
)

// Bangladeshi mobile numbers: 11-digit local form starting 01 with the third
// digit in [3-9], or the same number behind a +880 country code.
var (
	localPhone = regexp.MustCompile(`^01[3-9][0-9]{8}$`)
	intlPhone  = regexp.MustCompile(`^\+8801[3-9][0-9]{8}$`)
)

// NormalizePhone validates a Bangladeshi mobile number and returns the
// canonical stored form: international digits without the plus sign
// (8801XXXXXXXXX). The canonical form keys customer identity and the
// per-phone rate limit.
func NormalizePhone(raw string) (string, error) {
	p := strings.TrimSpace(raw)
	switch {
	case localPhone.MatchString(p):
		return "880" + p[1:], nil
	case intlPhone.MatchString(p):
		return strings.TrimPrefix(p, "+"), nil
	}
	return "", ErrInvalidPhone
}

// minAddressLen is a cheap completeness heuristic: anything shorter cannot
// be a deliverable Bangladeshi address.
const minAddressLen = 10

// validateCheckout rejects malformed submissions before anything touches
// the database. The delivery area is deliberately not checked here: whether
// an unset area is an error is a per-brand pricing policy decision.
func validateCheckout(req CheckoutRequest) error {
	if strings.TrimSpace(req.Customer.Name) == "" {
		return ErrNameRequired
	}
	if len(strings.TrimSpace(req.Customer.Address)) < minAddressLen {
		return ErrAddressTooShort
	}
	if len(req.Items) == 0 {
		return ErrEmptyCart
	}
	for _, line := range req.Items {
		if line.Quantity < 1 {
			return ErrInvalidQuantity
		}
	}
	return nil
}
