package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/admin"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/checkout"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-go/internal/order"
)

// CartRegistry resolves a visitor session to its cart store.
type CartRegistry interface {
	Get(ctx context.Context, sessionID string) *cart.Store
}

type OrderService interface {
	Get(ctx context.Context, orderID string) (*order.Order, error)
	ListByEmail(ctx context.Context, email string) ([]order.Order, error)
	List(ctx context.Context, filter order.ListFilter) ([]order.Order, error)
	UpdateStatus(ctx context.Context, orderID string, status order.Status) (*order.Order, error)
	Dashboard(ctx context.Context) (order.Dashboard, error)
}

type CatalogService interface {
	Browse(ctx context.Context, f catalog.Filter, sortBy string) ([]catalog.Product, error)
	Product(ctx context.Context, id string) (catalog.Product, error)
}

type Deps struct {
	Logger *zap.Logger
	Cfg    config.Config

	Carts     CartRegistry
	Checkouts *checkout.Manager
	Orders    OrderService
	Catalog   CatalogService
	Products  catalog.Repository
	Auth      *admin.Authenticator
	Feed      http.Handler
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(CorrelationID)
	r.Use(middleware.Logger)
	r.Use(Recover(d.Logger))
	r.Use(CORS(d.Cfg.CORSAllowOrigins))

	r.Get("/health", health)

	carts := NewCartHandler(d.Carts, d.Catalog, d.Cfg.Pricing, d.Cfg.DiscountCodes)
	checkouts := NewCheckoutHandler(d.Carts, d.Checkouts)
	orders := NewOrderHandler(d.Orders)
	products := NewCatalogHandler(d.Catalog)
	admins := NewAdminHandler(d.Auth, d.Orders, d.Products, d.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Use(Session)

		// Payment calls carry their own processor timeout and the feed is
		// long-lived, so neither runs under the request timeout.
		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkouts.Begin)
			r.Get("/", checkouts.View)
			r.Put("/shipping", checkouts.UpdateShipping)
			r.Post("/continue", checkouts.Continue)
			r.Post("/edit-shipping", checkouts.EditShipping)
			r.Post("/payment", checkouts.SubmitPayment)
		})

		r.With(admin.RequireAdmin(d.Auth)).Get("/admin/orders/feed", d.Feed.ServeHTTP)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(d.Cfg.RequestTimeout))

			r.Get("/products", products.List)
			r.Get("/products/{productId}", products.Get)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", carts.Get)
				r.Delete("/", carts.Clear)
				r.Post("/items", carts.AddItem)
				r.Patch("/items/{itemId}", carts.SetQuantity)
				r.Delete("/items/{itemId}", carts.RemoveItem)
				r.Post("/open", carts.Open)
				r.Post("/close", carts.Close)
				r.Post("/toggle", carts.Toggle)
				r.Post("/discount", carts.ApplyDiscount)
				r.Delete("/discount", carts.RemoveDiscount)
			})

			r.Get("/orders", orders.ListByEmail)
			r.Get("/orders/{orderId}", orders.Get)

			r.Post("/admin/login", admins.Login)
			r.Route("/admin", func(r chi.Router) {
				r.Use(admin.RequireAdmin(d.Auth))

				r.Get("/dashboard", admins.Dashboard)
				r.Get("/orders", admins.ListOrders)
				r.Get("/orders/export", admins.ExportOrders)
				r.Get("/orders/{orderId}", admins.GetOrder)
				r.Patch("/orders/{orderId}/status", admins.UpdateOrderStatus)

				r.Get("/products", admins.ListProducts)
				r.Post("/products", admins.CreateProduct)
				r.Put("/products/{productId}", admins.UpdateProduct)
				r.Post("/products/{productId}/toggle-active", admins.ToggleProduct)
				r.Delete("/products/{productId}", admins.DeleteProduct)
			})
		})
	})

	return r
}

func health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "storefront"})
}
