// Package api exposes the storefront containers over JSON HTTP.
package api

import (
	"net/http"

	_ "github.com/aaravmahajanofficial/fashionhub/docs"
	"github.com/aaravmahajanofficial/fashionhub/internal/api/handlers"
	"github.com/aaravmahajanofficial/fashionhub/internal/api/middleware"
	"github.com/aaravmahajanofficial/fashionhub/internal/metrics"
	service "github.com/aaravmahajanofficial/fashionhub/internal/services"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Containers are the storefront state holders of this process.
type Containers struct {
	Catalog *service.CatalogService
	Cart    *service.CartService
	Auth    *service.AuthService
	Theme   *service.ThemeService
}

// NewRouter registers every route. health may be nil.
func NewRouter(c Containers, health http.Handler) http.Handler {

	catalogHandler := handlers.NewCatalogHandler(c.Catalog)
	cartHandler := handlers.NewCartHandler(c.Cart, c.Catalog)
	authHandler := handlers.NewAuthHandler(c.Auth)
	themeHandler := handlers.NewThemeHandler(c.Theme)
	authMiddleware := middleware.NewAuthMiddleware(c.Auth)

	routerMux := http.NewServeMux()

	routerMux.HandleFunc("GET /api/v1/products", catalogHandler.ListProducts())
	routerMux.HandleFunc("GET /api/v1/products/{id}", catalogHandler.GetProduct())
	routerMux.HandleFunc("POST /api/v1/products", authMiddleware.RequireAdmin(catalogHandler.CreateProduct()))
	routerMux.HandleFunc("PATCH /api/v1/products/{id}", authMiddleware.RequireAdmin(catalogHandler.UpdateProduct()))
	routerMux.HandleFunc("DELETE /api/v1/products/{id}", authMiddleware.RequireAdmin(catalogHandler.DeleteProduct()))
	routerMux.HandleFunc("GET /api/v1/categories", catalogHandler.ListCategories())
	routerMux.HandleFunc("POST /api/v1/admin/catalog/seed", authMiddleware.RequireAdmin(catalogHandler.SeedCatalog()))

	routerMux.HandleFunc("GET /api/v1/cart", cartHandler.GetCart())
	routerMux.HandleFunc("POST /api/v1/cart/items", cartHandler.AddItem())
	routerMux.HandleFunc("PUT /api/v1/cart/items/{id}", cartHandler.UpdateQuantity())
	routerMux.HandleFunc("DELETE /api/v1/cart/items/{id}", cartHandler.RemoveItem())
	routerMux.HandleFunc("DELETE /api/v1/cart", cartHandler.ClearCart())
	routerMux.HandleFunc("POST /api/v1/cart/checkout", cartHandler.Checkout())

	routerMux.HandleFunc("POST /api/v1/auth/login", authHandler.Login())
	routerMux.HandleFunc("POST /api/v1/auth/signup", authHandler.Signup())
	routerMux.HandleFunc("POST /api/v1/auth/logout", authHandler.Logout())
	routerMux.HandleFunc("GET /api/v1/auth/me", authHandler.Me())

	routerMux.HandleFunc("GET /api/v1/theme", themeHandler.GetTheme())
	routerMux.HandleFunc("PUT /api/v1/theme", themeHandler.SetTheme())
	routerMux.HandleFunc("POST /api/v1/theme/toggle", themeHandler.ToggleTheme())

	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	if health != nil {
		routerMux.Handle("GET /health", health)
	}

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	return handler
}
