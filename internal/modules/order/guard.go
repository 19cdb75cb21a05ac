package order

import (
	"time"

	"github.com/asifjoardar/dokan-backend/internal/ratelimit"
)

// GuardConfig bounds checkout abuse. The per-phone window is wider and
// higher than the per-IP one because whole households and offices in
// Bangladesh commonly share an IP.
type GuardConfig struct {
	IPLimit     int
	IPWindow    time.Duration
	PhoneLimit  int
	PhoneWindow time.Duration
	MaxPending  int
}

// DefaultGuardConfig returns the production caps.
func DefaultGuardConfig() GuardConfig {
	return GuardConfig{
		IPLimit:     50,
		IPWindow:    15 * time.Minute,
		PhoneLimit:  200,
		PhoneWindow: 60 * time.Minute,
		MaxPending:  20,
	}
}

// Guard rate-limits checkout attempts per network origin and per phone
// number. It is advisory: a rejected attempt gets a polite 429, never a
// crash, and the counters live in process memory.
type Guard struct {
	limiter *ratelimit.Limiter
	cfg     GuardConfig
}

// NewGuard creates a Guard with the production caps.
func NewGuard() *Guard {
	return NewGuardWithConfig(DefaultGuardConfig())
}

// NewGuardWithConfig creates a Guard with explicit caps, used by tests.
func NewGuardWithConfig(cfg GuardConfig) *Guard {
	return &Guard{limiter: ratelimit.New(), cfg: cfg}
}

// AllowIP records one attempt from a network origin. An empty ip (no
// resolvable client address) is never limited.
func (g *Guard) AllowIP(ip string) bool {
	if ip == "" {
		return true
	}
	return g.limiter.Allow("checkout_ip_"+ip, g.cfg.IPLimit, g.cfg.IPWindow)
}

// AllowPhone records one attempt for a canonical phone number.
func (g *Guard) AllowPhone(phone string) bool {
	return g.limiter.Allow("checkout_phone_"+phone, g.cfg.PhoneLimit, g.cfg.PhoneWindow)
}

// MaxPending is the ceiling of unresolved PENDING orders per phone number.
func (g *Guard) MaxPending() int {
	return g.cfg.MaxPending
}
