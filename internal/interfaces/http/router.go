package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/orders"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	OrderUC     *orders.OrderUseCase
	ReceiptUC   *orders.ReceiptUseCase
	JWTSecret   string
	UploadsRoot string // directorio base servido en /uploads
	ProductsDir string // subdirectorio en disco para imágenes de productos
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Imágenes subidas, servidas como estáticos.
	app.Static("/uploads", deps.UploadsRoot)

	api := app.Group("/api")

	// Usuario: registro y login (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	userGroup := api.Group("/user")
	userGroup.Post("/register", authHandler.Register)
	userGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Cuenta del usuario autenticado
	userHandler := NewUserHandler(deps.AuthUC, deps.OrderUC)
	account := protected.Group("/user")
	account.Get("/profile", userHandler.GetProfile)
	account.Put("/profile", userHandler.UpdateProfile)
	account.Put("/change-password", userHandler.ChangePassword)
	account.Delete("/account", userHandler.DeleteAccount)
	account.Get("/orders", userHandler.ListOrders)

	// Catálogo: lectura y descuento de stock para cualquier usuario
	// autenticado; el resto de mutaciones solo para tendero o admin.
	productHandler := NewProductHandler(deps.ProductUC, deps.OrderUC, deps.ProductsDir)
	products := protected.Group("/products")
	manage := RequireRole(entity.RoleShopkeeper, entity.RoleAdmin)
	products.Get("/", productHandler.List)
	products.Post("/", manage, productHandler.Create)
	products.Post("/stock", productHandler.UpdateStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", manage, productHandler.Update)
	products.Delete("/:id", manage, productHandler.Delete)
	products.Post("/:id/image", manage, productHandler.UploadImage)

	// Órdenes (protegido)
	orderHandler := NewOrderHandler(deps.OrderUC, deps.ReceiptUC)
	ordersGroup := protected.Group("/orders")
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Get("/:id/receipt", orderHandler.Receipt)
}
