// Package router sets up all HTTP routes and middleware chains for the
// catalog server. It organizes routes into the JSON API group, the sync
// trigger, and the observer websocket endpoint.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"catalogd/internal/handlers"
	"catalogd/internal/middleware"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API, sync *handlers.Sync, ws *handlers.WS, syncLimiter *middleware.RateLimiter) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	// Health check.
	r.Get("/health", healthHandler)

	// Catalog CRUD API.
	r.Route("/api", func(r chi.Router) {
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", api.CategoriesList)
			r.Get("/tree", api.CategoriesTree)
			r.Post("/", api.CategoryCreate)
			r.Get("/{id}", api.CategoryGet)
			r.Put("/{id}", api.CategoryUpdate)
			r.Delete("/{id}", api.CategoryDelete)
			r.Get("/{id}/products", api.CategoryProducts)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", api.ProductsList)
			r.Post("/", api.ProductCreate)
			r.Get("/{code}", api.ProductGet)
			r.Put("/{code}", api.ProductUpdate)
			r.Delete("/{code}", api.ProductDelete)

			// Product-category association edges.
			r.Post("/{code}/categories/{id}", api.AssociationAdd)
			r.Delete("/{code}/categories/{id}", api.AssociationRemove)
		})
	})

	// Sync trigger — fire-and-forget, rate-limited per client IP.
	r.With(syncLimiter.Middleware).Post("/parse", sync.Trigger)

	// Observer websocket endpoint.
	r.Get("/ws", ws.Handle)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
