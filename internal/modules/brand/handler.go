package brand

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Handler exposes brand HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux) {
	r.Route("/api/v1/brands", func(r chi.Router) {
		r.Post("/", h.registerBrand)     // POST /api/v1/brands
		r.Get("/", h.listBrands)         // GET  /api/v1/brands
		r.Get("/{slug}", h.getBrand)     // GET  /api/v1/brands/{slug}
	})
}

func (h *Handler) registerBrand(w http.ResponseWriter, r *http.Request) {
	var req RegisterBrandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	b, err := h.service.RegisterBrand(r.Context(), req)
	if err != nil {
		code := http.StatusInternalServerError
		msg := err.Error()
		if strings.Contains(msg, "required") || strings.Contains(msg, "invalid") || strings.Contains(msg, "already registered") {
			code = http.StatusBadRequest
		}
		respond(w, code, map[string]string{"error": msg})
		return
	}
	respond(w, http.StatusCreated, b)
}

func (h *Handler) listBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.service.ListBrands(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, brands)
}

func (h *Handler) getBrand(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	b, err := h.service.GetBrandBySlug(r.Context(), slug)
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": "brand not found"})
		return
	}
	respond(w, http.StatusOK, b)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
