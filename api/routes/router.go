package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront/api/controllers"
	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/internal/basket"
	"github.com/angelmondragon/storefront/internal/checkout"
	"github.com/angelmondragon/storefront/internal/vendors"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/enums"
	"github.com/angelmondragon/storefront/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	gatherer prometheus.Gatherer,
	readyChecks []controllers.ReadyCheck,
	replica *vendors.Replica,
	sessionManager controllers.SessionManager,
	cart *basket.Basket,
	checkoutService checkout.Service,
	ordersService controllers.OrderTracker,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readyChecks...))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Identity(sessionManager, logg))

		r.Route("/vendors", func(r chi.Router) {
			r.Get("/", controllers.VendorList(replica, logg))
			r.Post("/refresh", controllers.VendorRefresh(replica, logg))
			r.Get("/lookup", controllers.VendorLookup(replica, logg))
			r.Post("/register", controllers.VendorRegister(sessionManager, logg))
			r.Get("/{vendorId}", controllers.VendorGet(replica, logg))
		})

		r.Route("/vendor", func(r chi.Router) {
			r.Use(middleware.RequireKind(enums.IdentityKindVendor, logg))
			r.Get("/profile", controllers.VendorProfile(sessionManager, logg))
			r.Patch("/profile", controllers.VendorProfileUpdate(sessionManager, replica, logg))
		})

		r.Route("/session", func(r chi.Router) {
			r.Get("/", controllers.SessionCurrent(sessionManager, logg))
			r.Delete("/", controllers.SessionSignOut(sessionManager, logg))
			r.Post("/guest", controllers.SessionGuest(sessionManager, logg))
			r.Post("/customer", controllers.SessionCustomer(sessionManager, logg))
			r.Post("/vendor", controllers.SessionVendor(sessionManager, logg))
		})

		r.Route("/basket", func(r chi.Router) {
			r.Get("/", controllers.BasketGet(cart, logg))
			r.Delete("/", controllers.BasketClear(cart, logg))
			r.Post("/items", controllers.BasketAddItem(cart, replica, logg))
			r.Put("/items/{itemId}", controllers.BasketSetQuantity(cart, logg))
			r.Get("/bill", controllers.BasketBill(checkoutService, logg))
		})

		r.Post("/checkout", controllers.Checkout(checkoutService, logg))

		r.Route("/orders/current", func(r chi.Router) {
			r.Get("/", controllers.OrderCurrent(ordersService, logg))
			r.Delete("/", controllers.OrderClear(ordersService, logg))
			r.Post("/dismiss", controllers.OrderDismiss(ordersService, logg))
		})
	})

	return r
}
