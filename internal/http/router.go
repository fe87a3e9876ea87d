package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/rogerio-castellano/inventory-orders/docs"
	"github.com/rogerio-castellano/inventory-orders/internal/http/handlers"
	rl "github.com/rogerio-castellano/inventory-orders/internal/http/rate_limiter"
	"github.com/rogerio-castellano/inventory-orders/internal/metrics"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

// RouterOptions holds the optional pieces of the middleware stack.
type RouterOptions struct {
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	RateLimiter *rl.Limiter
}

func NewRouter(s *handlers.Server, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(logger))
	if opts.Metrics != nil {
		r.Use(MetricsMiddleware(opts.Metrics))
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}

	r.Get("/health", s.HealthHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Group(func(r chi.Router) {
		if opts.RateLimiter != nil {
			r.Use(RateLimitMiddleware(opts.RateLimiter))
		}

		r.Post("/produtos", s.CreateProductHandler)
		r.Get("/produtos", s.GetProductsHandler)
		r.Get("/produtos/{id}", s.GetProductByIDHandler)
		r.Put("/produtos/{id}", s.UpdateProductHandler)
		r.Delete("/produtos/{id}", s.DeleteProductHandler)

		r.Post("/pedidos", s.CreateOrderHandler)
		r.Get("/pedidos", s.GetOrdersHandler)
		r.Get("/pedidos/{id}", s.GetOrderByIDHandler)
		r.Delete("/pedidos/{id}", s.DeleteOrderHandler)
	})

	return r
}
