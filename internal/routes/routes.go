package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/storefront-golang/internal/auth"
	"github.com/01moynul/storefront-golang/internal/handlers"
	"github.com/01moynul/storefront-golang/internal/middleware"
)

// Options are the router settings that do not belong to a handler.
type Options struct {
	CORSOrigin string
	Session    middleware.SessionOptions
	UploadDir  string
}

func SetupRouter(h *handlers.Handlers, codec *auth.SessionCodec, opts Options) *gin.Engine {
	router := gin.Default()

	// multipart parts above this spill to temp files
	router.MaxMultipartMemory = h.Images.MaxBytes

	// --- APPLY THE CORS GUARD ---
	// This must be the very first thing the router uses
	if opts.CORSOrigin != "" {
		router.Use(middleware.CORS(opts.CORSOrigin))
	}
	router.Use(middleware.Session(codec, opts.Session))

	if opts.UploadDir != "" {
		router.Static("/static/images", opts.UploadDir)
	}

	// --- Ping Route (Public) ---
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong!"})
	})

	// --- Catalog (Public) ---
	router.GET("/", h.Index)
	router.GET("/products", h.Index)
	router.GET("/products/:id", h.GetProduct)

	// --- Auth Routes (Public) ---
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
	router.POST("/logout", h.Logout)
	router.GET("/logout", h.Logout)
	router.GET("/flashes", h.PopFlashes)

	// --- Cart (Public, session only) ---
	router.GET("/cart", h.ViewCart)
	router.POST("/cart/items/:product_id", h.AddToCart)
	router.DELETE("/cart/items/:product_id", h.RemoveFromCart)

	// Checkout reports a missing login itself, with its own message
	router.POST("/checkout", h.Checkout)

	// --- Protected Routes (Login Required) ---
	orders := router.Group("/orders")
	orders.Use(middleware.RequireLogin())
	{
		orders.GET("", h.GetMyOrders)
		orders.GET("/:id", h.GetOrderDetails)
	}

	// --- Admin-Only Routes ---
	admin := router.Group("/admin")
	admin.Use(middleware.RequireAdmin(h.Identity))
	{
		admin.GET("", h.AdminDashboard)
		admin.POST("/upload", h.UploadImage)
		admin.POST("/products", h.CreateProduct)
		admin.GET("/products/:id", h.GetProductForEdit)
		admin.PUT("/products/:id", h.UpdateProduct)
		admin.DELETE("/products/:id", h.DeleteProduct)
	}

	return router
}
