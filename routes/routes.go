package routes

import (
	"github.com/ADat1304/Project-cafe/controllers"
	"github.com/ADat1304/Project-cafe/middlewares"
	"github.com/ADat1304/Project-cafe/services"
	"github.com/ADat1304/Project-cafe/utils"
	"github.com/ADat1304/Project-cafe/ws"

	"github.com/gin-gonic/gin"
)

// Deps is everything the routes hand to controllers.
type Deps struct {
	Auth        *services.AuthService
	Catalog     *services.CatalogService
	Carts       *services.CartService
	Submissions *services.SubmissionService
	Products    *services.ProductService
	Users       *services.UserService
	Tables      *services.TableService
	Orders      *services.OrderService
	Reports     *services.ReportService
	CartHub     *ws.CartHub
	CORSOrigins []string
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(middlewares.CORSMiddleware(d.CORSOrigins), middlewares.RequestID())
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Controllers
	authCtrl := controllers.NewAuthController(d.Auth)
	cartCtrl := controllers.NewCartController(d.Catalog, d.Carts, d.Submissions)
	productCtrl := controllers.NewProductController(d.Products)
	userCtrl := controllers.NewUserController(d.Users)
	tableCtrl := controllers.NewTableController(d.Tables)
	orderCtrl := controllers.NewOrderController(d.Orders)
	reportCtrl := controllers.NewReportController(d.Reports)

	staff := middlewares.AuthMiddleware(d.Auth, utils.RoleAdmin, utils.RoleStaff)
	adminOnly := middlewares.AuthMiddleware(d.Auth, utils.RoleAdmin)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/login", authCtrl.Login)
	}

	// Auth (protected)
	aAuth := a.Group("", middlewares.AuthMiddleware(d.Auth))
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.POST("/logout", authCtrl.Logout)
	}

	// Sales screen (staff/admin)
	sales := r.Group("/sales", staff)
	{
		sales.GET("/catalog", cartCtrl.RefreshCatalog)
		sales.GET("/cart", cartCtrl.View)
		sales.DELETE("/cart", cartCtrl.Reset)
		sales.POST("/cart/items", cartCtrl.AddItem)
		sales.PATCH("/cart/items/:index", cartCtrl.SetQuantity)
		sales.DELETE("/cart/items/:index", cartCtrl.RemoveLine)
		sales.POST("/cart/items/:index/increment", cartCtrl.Increment)
		sales.POST("/cart/items/:index/decrement", cartCtrl.Decrement)
		sales.PUT("/cart/items/:index/notes", cartCtrl.SetNote)
		sales.PUT("/cart/table", cartCtrl.SelectTable)
		sales.PUT("/cart/payment-method", cartCtrl.SelectPaymentMethod)
		sales.POST("/cart/submit", cartCtrl.SubmitOrder)
	}

	// Live cart updates
	r.GET("/ws/cart", middlewares.WSAuthMiddleware(d.Auth), d.CartHub.HandleWebSocket)

	// Menu: staff read, admin write
	r.GET("/products", staff, productCtrl.List)
	r.GET("/products/categories", staff, productCtrl.Categories)
	products := r.Group("/products", adminOnly)
	{
		products.POST("", productCtrl.Create)
		products.PUT("/:id", productCtrl.Update)
		products.DELETE("/:id", productCtrl.Delete)
		products.POST("/:id/inventory", productCtrl.AdjustInventory)
	}

	// Tables and orders (staff/admin)
	t := r.Group("/tables", staff)
	{
		t.GET("", tableCtrl.List)
		t.PATCH("/:number/status", tableCtrl.UpdateStatus)
		t.GET("/:number/qr", tableCtrl.QRCode)
	}
	o := r.Group("/orders", staff)
	{
		o.GET("", orderCtrl.List)
		o.PATCH("/:id/status", orderCtrl.UpdateStatus)
	}

	// Admin only
	users := r.Group("/users", adminOnly)
	{
		users.GET("", userCtrl.List)
		users.GET("/:id", userCtrl.Detail)
		users.POST("", userCtrl.Create)
		users.PUT("/:id", userCtrl.Update)
		users.DELETE("/:id", userCtrl.Delete)
	}
	reports := r.Group("/reports", adminOnly)
	{
		reports.GET("/dashboard", reportCtrl.Dashboard)
		reports.GET("/revenue", reportCtrl.Revenue)
	}
}
