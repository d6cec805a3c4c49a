package handler

import (
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"stallhub/internal/http/middleware"
	"stallhub/internal/service"
)

// Deps are the services and settings the HTTP API is built from.
type Deps struct {
	DB         *sql.DB
	Tokens     middleware.TokenParser
	Auth       service.AuthService
	Businesses service.BusinessService
	Stalls     service.StallService
	Products   service.ProductService
	Carts      service.CartService
	Orders     service.OrderService
	Analytics  service.AnalyticsService
	Admin      service.AdminService

	// AuthRateLimit caps credential endpoints per client and route; zero disables it.
	AuthRateLimit       int
	AuthRateLimitWindow time.Duration
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin; authorization beyond "is logged in" lives in the services.
func RegisterRoutes(app *fiber.App, d Deps) {
	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	api := app.Group("/api", middleware.Authenticate(d.Tokens))
	user := middleware.RequireAuth()
	limit := middleware.RateLimit(d.AuthRateLimit, d.AuthRateLimitWindow)

	authGroup := api.Group("/auth")
	authGroup.Post("/signup", limit, Signup(d.Auth))
	authGroup.Post("/login", limit, Login(d.Auth))
	authGroup.Post("/magic-link", limit, RequestMagicLink(d.Auth))
	authGroup.Post("/magic-link/verify", limit, VerifyMagicLink(d.Auth))
	authGroup.Post("/otp/verify", limit, VerifyCode(d.Auth))
	authGroup.Get("/me", user, Me(d.Auth))
	authGroup.Post("/password", user, SetPassword(d.Auth))

	biz := api.Group("/businesses")
	biz.Get("/", ListBusinesses(d.Businesses))
	biz.Post("/", middleware.RequireSuperAdmin(), CreateBusiness(d.Businesses))
	biz.Get("/:id", GetBusiness(d.Businesses))
	biz.Put("/:id", user, UpdateBusiness(d.Businesses))
	biz.Delete("/:id", user, DeleteBusiness(d.Businesses))
	biz.Get("/:id/staff", user, ListStaff(d.Businesses))
	biz.Post("/:id/staff", user, AddStaff(d.Businesses))
	biz.Get("/:id/stalls", ListStalls(d.Stalls))
	biz.Post("/:id/stalls", user, CreateStall(d.Stalls))
	biz.Get("/:id/orders", user, ListBusinessOrders(d.Orders))
	biz.Get("/:id/analytics", user, BusinessAnalytics(d.Analytics))

	stalls := api.Group("/stalls")
	stalls.Get("/:id", GetStall(d.Stalls))
	stalls.Put("/:id", user, UpdateStall(d.Stalls))
	stalls.Delete("/:id", user, DeleteStall(d.Stalls))
	stalls.Get("/:id/products", ListProducts(d.Products))
	stalls.Post("/:id/products", user, CreateProduct(d.Products))

	products := api.Group("/products")
	products.Get("/:id", GetProduct(d.Products))
	products.Put("/:id", user, UpdateProduct(d.Products))
	products.Delete("/:id", user, DeleteProduct(d.Products))
	products.Post("/:id/image", user, UploadProductImage(d.Products))

	cart := api.Group("/cart", user)
	cart.Get("/", GetCart(d.Carts))
	cart.Delete("/", ClearCart(d.Carts))
	cart.Post("/items", AddCartItem(d.Carts))
	cart.Put("/items/:productId", UpdateCartItem(d.Carts))
	cart.Delete("/items/:productId", RemoveCartItem(d.Carts))

	orders := api.Group("/orders", user)
	orders.Post("/", PlaceOrder(d.Orders))
	orders.Post("/checkout", Checkout(d.Orders))
	orders.Get("/", ListMyOrders(d.Orders))
	orders.Get("/:id", GetOrder(d.Orders))
	orders.Get("/:id/events", OrderEvents(d.Orders))
	orders.Post("/:id/cancel", CancelOrder(d.Orders))
	orders.Patch("/:id/status", UpdateOrderStatus(d.Orders))

	admin := api.Group("/admin", middleware.RequireSuperAdmin())
	admin.Get("/analytics", PlatformAnalytics(d.Analytics))
	admin.Get("/users", ListUsers(d.Admin))
	admin.Patch("/users/:id/active", SetUserActive(d.Admin))
	admin.Put("/users/:id/roles", SetUserRoles(d.Admin))
	admin.Delete("/users/:id", DeleteUser(d.Admin))
	admin.Get("/businesses", AdminBusinesses(d.Admin))
	admin.Get("/system", SystemStatus(d.Admin))
}
