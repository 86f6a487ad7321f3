package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/storefront/internal/pkg/metrics"
)

func NewRouter(handler *Handler, srvMetrics *metrics.ServerMetrics) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if srvMetrics != nil {
		r.Use(srvMetrics.Middleware)
	}

	r.Post("/signup", handler.SignUp)
	r.Post("/signin", handler.SignIn)

	r.Post("/checkout", handler.Checkout)
	r.Get("/orders", handler.ListOrders)
	r.Get("/orders/{id}", handler.GetOrder)

	r.Post("/products", handler.CreateProduct)
	r.Get("/products", handler.ListProducts)
	r.Get("/products/{id}", handler.GetProduct)
	r.Get("/products/{id}/recommendations", handler.Recommendations)

	r.Get("/health", handler.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return r
}
