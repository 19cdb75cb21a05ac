package order

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/asifjoardar/dokan-backend/internal/metrics"
	"github.com/asifjoardar/dokan-backend/internal/modules/pricing"
)

// Handler exposes the checkout endpoint and the admin order endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Post("/api/v1/checkout", h.checkout) // POST /api/v1/checkout

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Get("/", h.listOrders)                // GET   /api/v1/orders?brand_id=&status=PENDING
		r.Get("/{id}", h.getOrder)              // GET   /api/v1/orders/{id}
		r.Patch("/{id}/status", h.updateStatus) // PATCH /api/v1/orders/{id}/status
	})

	r.Get("/api/v1/stats", h.stats) // GET /api/v1/stats?brand_id=
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, CheckoutResponse{Error: "invalid request body"})
		return
	}

	o, err := h.service.Checkout(r.Context(), req, clientIP(r))
	if err != nil {
		code, outcome := checkoutFailure(err)
		metrics.RecordCheckout(req.BrandID, outcome)
		msg := err.Error()
		if code == http.StatusInternalServerError && !errors.Is(err, ErrBrandNotConfigured) {
			// Internal failures are logged with context and returned opaque.
			log.Printf("[ERROR] checkout failed (brand=%s ip=%s): %v", req.BrandID, clientIP(r), err)
			msg = "something went wrong, please try again"
		}
		respond(w, code, CheckoutResponse{Error: msg})
		return
	}

	metrics.RecordCheckout(req.BrandID, metrics.OutcomeAccepted)
	respond(w, http.StatusCreated, CheckoutResponse{Success: true, OrderID: o.ID.String()})
}

// checkoutFailure maps a checkout error to an HTTP status and a metrics
// outcome label, per the error taxonomy: user input 400, throttling 429,
// stale carts 422, configuration and internal failures 500.
func checkoutFailure(err error) (int, string) {
	switch {
	case errors.Is(err, ErrRateLimited), errors.Is(err, ErrTooManyPending):
		return http.StatusTooManyRequests, metrics.OutcomeRejectedRateLimit
	case errors.Is(err, ErrProductUnavailable):
		return http.StatusUnprocessableEntity, metrics.OutcomeRejectedInput
	case errors.Is(err, ErrNameRequired),
		errors.Is(err, ErrInvalidPhone),
		errors.Is(err, ErrAddressTooShort),
		errors.Is(err, ErrEmptyCart),
		errors.Is(err, ErrInvalidQuantity),
		errors.Is(err, pricing.ErrAreaRequired),
		errors.Is(err, pricing.ErrUnknownArea):
		return http.StatusBadRequest, metrics.OutcomeRejectedInput
	case errors.Is(err, ErrBrandNotConfigured):
		return http.StatusInternalServerError, metrics.OutcomeFailed
	default:
		return http.StatusInternalServerError, metrics.OutcomeFailed
	}
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	brandID := r.URL.Query().Get("brand_id")
	if brandID == "" {
		respond(w, http.StatusBadRequest, map[string]string{"error": "brand_id is required"})
		return
	}
	orders, err := h.service.ListBrandOrders(r.Context(), brandID, r.URL.Query().Get("status"))
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "invalid") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	o, err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		code := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidTransition) {
			code = http.StatusUnprocessableEntity
		} else if errors.Is(err, ErrOrderNotFound) {
			code = http.StatusNotFound
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	brandID := r.URL.Query().Get("brand_id")
	if brandID == "" {
		respond(w, http.StatusBadRequest, map[string]string{"error": "brand_id is required"})
		return
	}
	stats, err := h.service.Stats(r.Context(), brandID)
	if err != nil {
		code := http.StatusInternalServerError
		if strings.Contains(err.Error(), "invalid") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, stats)
}

// clientIP resolves the submitting network origin, trusting the first
// X-Forwarded-For hop when present (the service always runs behind a proxy
// in production).
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
