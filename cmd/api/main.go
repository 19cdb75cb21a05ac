package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/asifjoardar/dokan-backend/internal/email"
	"github.com/asifjoardar/dokan-backend/internal/metrics"
	"github.com/asifjoardar/dokan-backend/internal/modules/brand"
	"github.com/asifjoardar/dokan-backend/internal/modules/catalog"
	"github.com/asifjoardar/dokan-backend/internal/modules/customer"
	"github.com/asifjoardar/dokan-backend/internal/modules/order"
	"github.com/asifjoardar/dokan-backend/internal/modules/pricing"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	db, err := sql.Open("postgres", os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}
	fmt.Println("Successfully connected to the database!")

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(metrics.Middleware)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/metrics", promhttp.Handler())

	// ── Tenancy & Catalog ───────────────────────────────────
	brandRepo := brand.NewPostgresRepository(db)
	brandService := brand.NewService(brandRepo)
	brand.NewHandler(brandService).RegisterRoutes(router)

	catalogRepo := catalog.NewPostgresRepository(db)
	catalogService := catalog.NewService(catalogRepo)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	customerRepo := customer.NewPostgresRepository(db)
	customerService := customer.NewService(customerRepo)
	customer.NewHandler(customerService).RegisterRoutes(router)

	// ── Checkout & Orders ───────────────────────────────────
	var mailer email.Sender
	if host := os.Getenv("SMTP_HOST"); host != "" {
		mailer = email.NewSMTPService(host, envOr("SMTP_PORT", "587"), os.Getenv("SMTP_FROM"))
	} else {
		log.Println("SMTP_HOST not set, order confirmation emails disabled")
	}

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, brandPolicies(), order.NewGuard(), mailer)
	order.NewHandler(orderService).RegisterRoutes(router)

	// ── Start Server ────────────────────────────────────────
	port := envOr("APP_PORT", "8080")
	fmt.Printf("Dokan API server starting on :%s\n", port)
	log.Fatal(http.ListenAndServe(":"+port, router))
}

// brandPolicies wires each tenant's pricing rules. Brands without an entry
// fall back to linear pricing with the standard 60/120 delivery fees. The
// rules are per-brand by design: one sells stepped gur bundles, one waives
// delivery on heavy honey jars, and the legacy attire storefront still
// assumes "inside Dhaka" when the buyer skips the area selector.
func brandPolicies() *pricing.Registry {
	r := pricing.NewRegistry(pricing.Flat{InsideFee: 60, OutsideFee: 120})

	// Stepped bundles: 1 jar 550, any 2 for 1000, any 3 for 1400; a combo
	// pack anywhere in the cart ships free.
	r.Register("rupkotha", pricing.StepTable{
		GroupSize:  3,
		Prices:     []float64{550, 1000, 1400},
		InsideFee:  60,
		OutsideFee: 120,
		Free:       pricing.AnyPack(),
	})

	// Free delivery from 2kg of honey in a single line.
	r.Register("modhubon", pricing.Flat{
		InsideFee:  70,
		OutsideFee: 130,
		Free:       pricing.MinWeight(2000),
	})

	// Free delivery at 3 or more pieces.
	r.Register("dhaka-threads", pricing.Flat{
		InsideFee:  60,
		OutsideFee: 120,
		Free:       pricing.MinUnits(3),
	})

	// Legacy storefront: unset area silently means inside Dhaka, free
	// delivery above ৳2000.
	r.Register("shobuj-bazar", pricing.Flat{
		InsideFee:    60,
		OutsideFee:   120,
		Free:         pricing.MinSubtotal(2000),
		AssumeInside: true,
	})

	return r
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
