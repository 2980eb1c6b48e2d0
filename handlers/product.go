package handlers

import (
	"net/http"

	"dessert-cart/catalog"
	"dessert-cart/views"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	Catalog *catalog.Catalog
	View    views.CatalogView
}

// Index renders the storefront: catalog, the session's cart and the order
// summary modal.
func (h *ProductHandler) Index(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "index", views.Page{
		Catalog:  h.View,
		Cart:     sess.CartView.Model(),
		CartHTML: sess.CartView.HTML(),
		Summary:  summaryModel(sess),
	})
}

func (h *ProductHandler) GetProducts(c *gin.Context) {
	c.JSON(http.StatusOK, h.Catalog.Products())
}

// GetCatalogView returns the rendered catalog rows.
func (h *ProductHandler) GetCatalogView(c *gin.Context) {
	c.JSON(http.StatusOK, h.View)
}
