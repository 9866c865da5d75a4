package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phonedeck/phonedeck-backend/api/controllers"
	"github.com/phonedeck/phonedeck-backend/api/middleware"
	"github.com/phonedeck/phonedeck-backend/internal/catalog"
	"github.com/phonedeck/phonedeck-backend/internal/devices"
	"github.com/phonedeck/phonedeck-backend/internal/favorites"
	"github.com/phonedeck/phonedeck-backend/internal/products"
	"github.com/phonedeck/phonedeck-backend/internal/reservations"
	"github.com/phonedeck/phonedeck-backend/internal/reviews"
	"github.com/phonedeck/phonedeck-backend/internal/stores"
	"github.com/phonedeck/phonedeck-backend/internal/tables"
	"github.com/phonedeck/phonedeck-backend/pkg/config"
	"github.com/phonedeck/phonedeck-backend/pkg/db"
	"github.com/phonedeck/phonedeck-backend/pkg/enums"
	"github.com/phonedeck/phonedeck-backend/pkg/logger"
	"github.com/phonedeck/phonedeck-backend/pkg/redis"
)

// Services bundles every domain service the HTTP surface needs.
type Services struct {
	Catalog      catalog.Service
	Devices      devices.Service
	Stores       stores.Service
	Products     products.Service
	Tables       tables.Service
	Favorites    favorites.Service
	Reservations reservations.Service
	Reviews      reviews.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, controllers.ReadinessDeps(dbP, redisClient)))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	// One route tree for the whole versioned API. Browsing and store pages
	// need no credentials; the authenticated group layers Auth on top so the
	// public and protected paths never compete for the same mount.
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog/search", controllers.CatalogSearch(cfg.Catalog, svcs.Catalog, logg))

		r.Route("/devices", func(r chi.Router) {
			r.Get("/", controllers.ListDeviceModels(svcs.Devices, logg))
			r.Get("/{modelId}", controllers.GetDeviceModel(svcs.Devices, logg))
		})

		r.Route("/stores/{storeId}", func(r chi.Router) {
			r.Get("/", controllers.GetStore(svcs.Stores, logg))
			r.Get("/reviews", controllers.ListStoreReviews(svcs.Reviews, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))

			r.Get("/ping", controllers.PrivatePing())

			r.Route("/favorites", func(r chi.Router) {
				r.Get("/", controllers.ListFavorites(svcs.Favorites, logg))
				r.Put("/{productId}", controllers.AddFavorite(svcs.Favorites, logg))
				r.Delete("/{productId}", controllers.RemoveFavorite(svcs.Favorites, logg))
			})

			r.Route("/reservations", func(r chi.Router) {
				r.Get("/", controllers.ListUserReservations(svcs.Reservations, logg))
				r.Post("/", controllers.CreateReservation(svcs.Reservations, logg))
				r.Post("/{reservationId}/cancel", controllers.CancelReservation(svcs.Reservations, logg))
			})

			r.Post("/reviews", controllers.CreateReview(svcs.Reviews, logg))

			r.Route("/seller", func(r chi.Router) {
				r.Use(middleware.RequireRole(string(enums.UserRoleSeller), logg))
				r.Use(middleware.RequireStore(logg))

				r.Patch("/store", controllers.SellerUpdateStore(svcs.Stores, logg))

				r.Route("/tables", func(r chi.Router) {
					r.Get("/", controllers.SellerListTables(svcs.Tables, logg))
					r.Post("/", controllers.SellerCreateTable(svcs.Tables, logg))
					r.Patch("/{tableId}", controllers.SellerUpdateTable(svcs.Tables, logg))
					r.Delete("/{tableId}", controllers.SellerDeleteTable(svcs.Tables, logg))
					r.Post("/{tableId}/restore", controllers.SellerRestoreTable(svcs.Tables, logg))
					r.Get("/{tableId}/products", controllers.SellerListTableProducts(svcs.Products, logg))
				})

				r.Route("/products", func(r chi.Router) {
					r.Post("/", controllers.SellerCreateProduct(svcs.Products, logg))
					r.Patch("/{productId}", controllers.SellerUpdateProduct(svcs.Products, logg))
					r.Delete("/{productId}", controllers.SellerDeleteProduct(svcs.Products, logg))
					r.Post("/{productId}/restore", controllers.SellerRestoreProduct(svcs.Products, logg))
				})

				r.Route("/reservations", func(r chi.Router) {
					r.Get("/", controllers.SellerListReservations(svcs.Reservations, logg))
					r.Post("/{reservationId}/decision", controllers.SellerDecideReservation(svcs.Reservations, logg))
				})
			})
		})
	})

	return r
}
