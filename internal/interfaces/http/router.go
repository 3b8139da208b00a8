package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/checkout"
	"github.com/jhoicas/pos-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	SaleUC     *usecase.SaleUseCase
	CheckoutUC *checkout.UseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Products: lecturas públicas, gestión protegida con Bearer Token
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/search", productHandler.Search)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", AuthMiddleware(deps.JWTSecret), productHandler.Create)
	products.Put("/:id", AuthMiddleware(deps.JWTSecret), productHandler.Update)

	// Sales: checkout y consulta
	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.CheckoutUC, deps.SaleUC)
	sales.Post("/", saleHandler.Checkout)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
}
