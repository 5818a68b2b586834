package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Gokul-1737/mk-glass-dashboard/api/controllers"
	"github.com/Gokul-1737/mk-glass-dashboard/api/middleware"
	analyticsvc "github.com/Gokul-1737/mk-glass-dashboard/internal/analytics"
	authsvc "github.com/Gokul-1737/mk-glass-dashboard/internal/auth"
	exportsvc "github.com/Gokul-1737/mk-glass-dashboard/internal/export"
	productsvc "github.com/Gokul-1737/mk-glass-dashboard/internal/products"
	salesvc "github.com/Gokul-1737/mk-glass-dashboard/internal/sales"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/auth/session"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/config"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/logger"
	"github.com/Gokul-1737/mk-glass-dashboard/pkg/metrics"
)

// Deps bundles everything the router wires together.
type Deps struct {
	Config    *config.Config
	Logger    *logger.Logger
	DB        controllers.Pinger
	Redis     controllers.Pinger
	Sessions  session.AccessSessionChecker
	HTTPStats *metrics.HTTPMetrics
	Gatherer  prometheus.Gatherer
	Auth      authsvc.Service
	Products  productsvc.Service
	Sales     salesvc.Service
	Analytics analyticsvc.Service
	Export    exportsvc.Service
}

// NewRouter assembles the full HTTP surface: health and metrics are open,
// auth endpoints are open but rate limited inside the service, and the
// dashboard API sits behind the session guard.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.Service.CORSOrigins),
		middleware.Metrics(deps.HTTPStats),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, deps.DB, deps.Redis, logg))
	})

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.Login(deps.Auth, logg))
		r.Post("/refresh", controllers.Refresh(deps.Auth, logg))
		r.Post("/logout", controllers.Logout(deps.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.Sessions, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.Products, logg))
			r.Get("/{productId}", controllers.GetProduct(deps.Products, logg))
			r.Post("/", controllers.CreateProduct(deps.Products, logg))
			r.Patch("/{productId}", controllers.UpdateProduct(deps.Products, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(deps.Products, logg))
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", controllers.ListSales(deps.Sales, logg))
			r.Post("/", controllers.RecordSale(deps.Sales, logg))
			r.Patch("/{saleId}", controllers.UpdateSale(deps.Sales, logg))
			r.Delete("/{saleId}", controllers.DeleteSale(deps.Sales, logg))
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/", controllers.Analytics(deps.Analytics, logg))
			r.Get("/categories", controllers.AnalyticsCategories(deps.Analytics, logg))
			r.Get("/summary", controllers.AnalyticsSummary(deps.Analytics, logg))
		})

		r.Get("/export/{dataset}", controllers.ExportDataset(deps.Export, logg))
	})

	return r
}
