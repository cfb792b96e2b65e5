package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/minipos/minipos/internal/http/handlers"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(LoginRateLimitMiddleware)
		r.Post("/register", handlers.RegisterHandler)
		r.Post("/login", handlers.LoginHandler)
		r.Post("/refresh", handlers.RefreshHandler)
	})

	r.Group(func(r chi.Router) {
		r.Use(handlers.AuthMiddleware)

		r.Post("/products", handlers.CreateProductHandler)
		r.Get("/products", handlers.GetProductsHandler)
		r.Get("/products/{id}", handlers.GetProductByIDHandler)
		r.Put("/products/{id}", handlers.UpdateProductHandler)
		r.Delete("/products/{id}", handlers.DeleteProductHandler)
		r.Post("/products/{id}/adjust", handlers.AdjustQuantityHandler)
		r.Post("/products/import", handlers.ImportProductsHandler)

		r.Get("/cart", handlers.GetCartHandler)
		r.Delete("/cart", handlers.ClearCartHandler)
		r.Post("/cart/items", handlers.AddCartItemHandler)
		r.Put("/cart/items/{id}", handlers.UpdateCartItemHandler)
		r.Delete("/cart/items/{id}", handlers.RemoveCartItemHandler)

		r.Post("/sales", handlers.CompleteSaleHandler)
		r.Get("/sales", handlers.GetSalesReportHandler)
		r.Get("/sales/export", handlers.ExportSalesHandler)
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}
