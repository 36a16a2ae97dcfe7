package api

import (
	"net/http"

	"github.com/forno-app/forno/internal/auth"
	"github.com/forno-app/forno/internal/config"
	"github.com/forno-app/forno/internal/menu"
	"github.com/forno-app/forno/internal/metrics"
	"github.com/forno-app/forno/internal/notify"
	"github.com/forno-app/forno/internal/order"
	"github.com/forno-app/forno/internal/user"
	"github.com/forno-app/forno/internal/version"
)

// RouterConfig carries the dependencies of the HTTP routes.
type RouterConfig struct {
	Guard      *auth.Guard
	Users      user.Repository
	Items      menu.ItemRepository
	Categories menu.CategoryRepository
	Orders     order.Repository

	// Optional.
	Notifier *notify.Notifier
	Hub      *Hub
	Metrics  *metrics.Collector
	Security *config.SecurityConfig
}

// Router is the assembled HTTP handler with its middleware stack.
type Router struct {
	handler  http.Handler
	limiters []*RateLimiter
}

// NewRouter builds the route table and middleware chain.
func NewRouter(cfg RouterConfig) *Router {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{
			"status": "ok",
			"commit": version.CommitHash,
		}, http.StatusOK)
	})

	if cfg.Metrics != nil {
		mux.Handle("/metrics", cfg.Metrics.Handler())
	}

	me := NewMeHandler(cfg.Guard, cfg.Users)
	mux.HandleFunc("/api/me", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			me.GetProfile(w, r)
		case http.MethodPut:
			me.UpdateProfile(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	users := NewUserHandler(cfg.Guard, cfg.Users)
	mux.HandleFunc("/api/users", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			users.List(w, r)
		case http.MethodDelete:
			users.Delete(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	items := NewMenuHandler(cfg.Guard, cfg.Items)
	mux.HandleFunc("/api/menu-items", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			items.List(w, r)
		case http.MethodPost:
			items.Create(w, r)
		case http.MethodPut:
			items.Update(w, r)
		case http.MethodDelete:
			items.Delete(w, r)
		default:
			methodNotAllowed(w)
		}
	})
	mux.HandleFunc("/api/menu-items/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		items.Get(w, r)
	})

	categories := NewCategoryHandler(cfg.Guard, cfg.Categories)
	mux.HandleFunc("/api/categories", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			categories.List(w, r)
		case http.MethodPost:
			categories.Create(w, r)
		case http.MethodPut:
			categories.Update(w, r)
		case http.MethodDelete:
			categories.Delete(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	orders := NewOrderHandler(cfg.Guard, cfg.Orders, cfg.Notifier, cfg.Hub)
	mux.HandleFunc("/api/orders", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			orders.List(w, r)
		case http.MethodPost:
			orders.Create(w, r)
		default:
			methodNotAllowed(w)
		}
	})
	mux.HandleFunc("/api/orders/", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			orders.Get(w, r)
		case http.MethodPut:
			orders.Update(w, r)
		default:
			methodNotAllowed(w)
		}
	})

	if cfg.Hub != nil {
		// Registered on the exact path so it wins over /api/orders/.
		mux.Handle("/api/orders/feed", NewFeedHandler(cfg.Guard, cfg.Hub))
	}

	rt := &Router{}

	middlewares := []Middleware{
		RecoveryMiddleware,
		RequestIDMiddleware,
		LoggingMiddleware,
	}
	if cfg.Metrics != nil {
		middlewares = append(middlewares, MetricsMiddleware(cfg.Metrics))
	}

	var origins []string
	if cfg.Security != nil {
		origins = cfg.Security.CORSAllowedOrigins
	}
	middlewares = append(middlewares, CORSMiddleware(origins))

	if cfg.Security != nil && cfg.Security.RateLimit.Enabled {
		rl := cfg.Security.RateLimit
		general := NewRateLimiter(rl.RequestsPerMinute, rl.Burst)
		orderLimiter := NewRateLimiter(rl.OrderRequestsPerMinute, rl.OrderRequestsPerMinute)
		rt.limiters = append(rt.limiters, general, orderLimiter)
		middlewares = append(middlewares, RateLimitMiddleware(general, orderLimiter))
	}

	middlewares = append(middlewares, JSONContentTypeMiddleware)

	rt.handler = Chain(mux, middlewares...)
	return rt
}

func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rt.handler.ServeHTTP(w, r)
}

// Stop releases background resources held by the middleware stack.
func (rt *Router) Stop() {
	for _, rl := range rt.limiters {
		rl.Stop()
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
}
