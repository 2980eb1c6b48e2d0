package routes

import (
	"html/template"
	"net/http"

	"dessert-cart/catalog"
	"dessert-cart/dtos"
	"dessert-cart/handlers"
	"dessert-cart/middleware"
	"dessert-cart/session"
	"dessert-cart/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deps are the collaborators shared by all routes.
type Deps struct {
	Catalog       *catalog.Catalog
	CatalogView   views.CatalogView
	Templates     *template.Template
	Sessions      *session.Registry
	RateLimiter   *middleware.RateLimiter
	SessionMaxAge int
	Logger        *zap.Logger
}

func SetupRoutes(r *gin.Engine, d Deps) {
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Templates != nil {
		r.SetHTMLTemplate(d.Templates)
	}

	// Initialize handlers
	productHandler := &handlers.ProductHandler{Catalog: d.Catalog, View: d.CatalogView}
	cartHandler := &handlers.CartHandler{Catalog: d.Catalog, Logger: d.Logger}
	orderHandler := &handlers.OrderHandler{Logger: d.Logger}

	sessions := middleware.Session(d.Sessions, d.SessionMaxAge)
	limited := []gin.HandlerFunc{sessions}
	if d.RateLimiter != nil {
		limited = append([]gin.HandlerFunc{d.RateLimiter.Middleware()}, sessions)
	}

	// Storefront pages and form actions
	r.GET("/", sessions, productHandler.Index)
	storefront := r.Group("")
	storefront.Use(limited...)
	{
		storefront.POST("/cart/add", cartHandler.AddForm)
		storefront.POST("/cart/remove", cartHandler.RemoveForm)
		storefront.POST("/cart/increase", cartHandler.IncreaseForm)
		storefront.POST("/cart/decrease", cartHandler.DecreaseForm)

		storefront.POST("/order/confirm", orderHandler.ConfirmForm)
		storefront.POST("/order/new", orderHandler.NewOrderForm)
		storefront.POST("/order/dismiss", orderHandler.DismissForm)
	}

	// Public catalog routes
	api := r.Group("/api")
	{
		api.GET("/products", productHandler.GetProducts)
		api.GET("/catalog", productHandler.GetCatalogView)
	}

	// Session routes
	cart := api.Group("")
	cart.Use(limited...)
	{
		cart.GET("/cart", cartHandler.GetCart)
		cart.GET("/cart/events", cartHandler.Events)
		cart.POST("/cart/items", cartHandler.AddToCart)
		cart.PATCH("/cart/items/:name", cartHandler.ChangeQuantity)
		cart.DELETE("/cart/items/:name", cartHandler.RemoveFromCart)
		cart.DELETE("/cart", cartHandler.ClearCart)

		cart.GET("/order", orderHandler.GetOrder)
		cart.POST("/order/confirm", orderHandler.ConfirmOrder)
		cart.POST("/order/new", orderHandler.StartNewOrder)
		cart.POST("/order/dismiss", orderHandler.DismissOrder)
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dtos.HealthResponse{
			Status:   "ok",
			Products: d.Catalog.Len(),
			Sessions: d.Sessions.Len(),
		})
	})
}
