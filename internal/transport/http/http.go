package httptransport

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nikolayk812/orderflow/internal/config"
	"go.uber.org/zap"
)

type HTTPTransport struct {
	server   *http.Server
	router   *chi.Mux
	handlers *orderHandlers
	logger   *zap.Logger
}

func NewHTTPTransport(cfg config.HTTP, orders orderService, logger *zap.Logger) *HTTPTransport {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := newRouter(cfg.CORS, logger)

	t := &HTTPTransport{
		server: &http.Server{
			Addr:         net.JoinHostPort("0.0.0.0", strconv.Itoa(cfg.Port)),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		router:   router,
		handlers: newOrderHandlers(orders),
		logger:   logger,
	}
	t.registerRoutes()

	return t
}

func (t *HTTPTransport) Handler() http.Handler {
	return t.router
}

// Run serves until Shutdown is called.
func (t *HTTPTransport) Run() error {
	t.logger.Info("http.listen", zap.String("addr", t.server.Addr))

	if err := t.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (t *HTTPTransport) Shutdown(ctx context.Context) error {
	return t.server.Shutdown(ctx)
}

func (t *HTTPTransport) registerRoutes() {
	h := t.handlers

	t.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
	})

	t.router.Route("/api/v1", func(r chi.Router) {
		r.Use(identity)

		r.Route("/orders", func(r chi.Router) {
			r.Use(requireElevated)

			r.Get("/", h.listOrders)
			r.Get("/{orderID}", h.getOrder)
			r.Get("/{orderID}/status", h.getOrderStatus)
			r.Patch("/{orderID}/status", h.toggleOrderStatus)
		})

		r.Route("/me/orders", func(r chi.Router) {
			r.Get("/", h.listMyOrders)
			r.Post("/", h.createOrder)
			r.Get("/{orderID}", h.getMyOrder)
			r.Get("/{orderID}/status", h.getMyOrderStatus)
			r.Patch("/{orderID}", h.updateOrder)
			r.Post("/{orderID}/cancel", h.cancelOrder)
		})
	})
}

func newRouter(cfg config.CORS, logger *zap.Logger) *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: cfg.AllowedMethods,
		AllowedHeaders: cfg.AllowedHeaders,
		ExposedHeaders: []string{"Location", middleware.RequestIDHeader},
		MaxAge:         cfg.MaxAge,
	})
	router.Use(c.Handler)

	return router
}
