// Package httpapi binds the cart widget, the catalog and the agent tools to
// JSON endpoints.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/beautique-shop/storefront/internal/cart/tools"
	"github.com/beautique-shop/storefront/internal/cart/widget"
	"github.com/beautique-shop/storefront/internal/catalog"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

type Config struct {
	Addr            string        `default:":8080"`
	ShutdownTimeout time.Duration `split_words:"true" default:"10s"`
}

type Deps struct {
	Widget  *widget.Widget
	Catalog *catalog.Catalog
	Tools   *tools.Registry
	Logger  zerolog.Logger
}

type Server struct {
	deps Deps
	mux  *http.ServeMux
}

func New(deps Deps) *Server {
	s := &Server{deps: deps, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /cart", s.getCart)
	s.mux.HandleFunc("POST /cart/open", s.openCart)
	s.mux.HandleFunc("POST /cart/close", s.closeCart)
	s.mux.HandleFunc("POST /cart/items", s.addItem)
	s.mux.HandleFunc("PATCH /cart/items/{id}", s.updateQuantity)
	s.mux.HandleFunc("DELETE /cart/items/{id}", s.removeItem)
	s.mux.HandleFunc("DELETE /cart", s.clearCart)
	s.mux.HandleFunc("POST /cart/checkout", s.checkout)

	s.mux.HandleFunc("GET /products", s.listProducts)
	s.mux.HandleFunc("POST /products", s.createProduct)
	s.mux.HandleFunc("GET /products/{id}", s.getProduct)
	s.mux.HandleFunc("PUT /products/{id}", s.updateProduct)
	s.mux.HandleFunc("DELETE /products/{id}", s.deleteProduct)

	if s.deps.Tools != nil {
		s.mux.HandleFunc("GET /tools", s.listTools)
		s.mux.HandleFunc("POST /tools/{name}", s.invokeTool)
	}
}

// Handler returns the routes wrapped with request logging and panic recovery.
func (s *Server) Handler() http.Handler {
	var h http.Handler = s.mux
	h = recoverer(h)
	h = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	})(h)
	h = hlog.RemoteAddrHandler("ip")(h)
	h = hlog.RequestIDHandler("req_id", "X-Request-ID")(h)
	h = hlog.NewHandler(s.deps.Logger)(h)
	return h
}

// ListenAndServe serves until ctx is cancelled, then shuts down within
// cfg.ShutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, cfg Config) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.deps.Logger.Info().Str("addr", cfg.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	s.deps.Logger.Info().Msg("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				hlog.FromRequest(r).Error().Interface("panic", rec).Msg("panic recovered")
				writeError(w, r, errors.New("panic"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
