package handlers

import (
	"errors"
	"io"
	"net/http"

	"dessert-cart/catalog"
	"dessert-cart/dtos"
	"dessert-cart/models"
	"dessert-cart/session"
	"dessert-cart/utils"
	"dessert-cart/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartHandler struct {
	Catalog *catalog.Catalog
	Logger  *zap.Logger
}

func (h *CartHandler) GetCart(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, sess.CartView.Model())
}

func (h *CartHandler) AddToCart(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var req dtos.ProductNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	product, ok := h.findProduct(c, req.Name)
	if !ok {
		return
	}

	sess.Store.AddToCart(product)
	c.JSON(http.StatusOK, sess.CartView.Model())
}

func (h *CartHandler) ChangeQuantity(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var req dtos.ChangeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	sess.Store.ChangeQuantity(c.Param("name"), req.Delta)
	c.JSON(http.StatusOK, sess.CartView.Model())
}

func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	sess.Store.RemoveFromCart(c.Param("name"))
	c.JSON(http.StatusOK, sess.CartView.Model())
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	sess.Store.Reset()
	c.JSON(http.StatusOK, sess.CartView.Model())
}

// Events streams the cart view as server-sent "cart" events: the current
// state first, then one event per mutation. Snapshots are dropped for a
// client that falls behind.
func (h *CartHandler) Events(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	updates := make(chan models.CartSnapshot, 8)
	unsubscribe := sess.Store.Subscribe(func(snap models.CartSnapshot) {
		select {
		case updates <- snap:
		default:
		}
	})
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	ctx := c.Request.Context()
	first := true

	c.Stream(func(w io.Writer) bool {
		if first {
			first = false
			c.SSEvent("cart", views.NewCartViewModel(sess.Store.Snapshot()))
			return true
		}

		select {
		case <-ctx.Done():
			return false
		case snap := <-updates:
			c.SSEvent("cart", views.NewCartViewModel(snap))
			return true
		}
	})
}

// Storefront form actions.

func (h *CartHandler) AddForm(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var req dtos.ProductNameRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	product, ok := h.findProduct(c, req.Name)
	if !ok {
		return
	}

	sess.Store.AddToCart(product)
	backToStorefront(c)
}

func (h *CartHandler) RemoveForm(c *gin.Context) {
	h.itemForm(c, func(sess *session.Session, name string) {
		sess.Store.RemoveFromCart(name)
	})
}

func (h *CartHandler) IncreaseForm(c *gin.Context) {
	h.itemForm(c, func(sess *session.Session, name string) {
		sess.Store.ChangeQuantity(name, 1)
	})
}

func (h *CartHandler) DecreaseForm(c *gin.Context) {
	h.itemForm(c, func(sess *session.Session, name string) {
		sess.Store.ChangeQuantity(name, -1)
	})
}

func (h *CartHandler) itemForm(c *gin.Context, apply func(sess *session.Session, name string)) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var req dtos.ProductNameRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}

	apply(sess, req.Name)
	backToStorefront(c)
}

func (h *CartHandler) findProduct(c *gin.Context, name string) (models.Product, bool) {
	product, err := h.Catalog.Find(name)
	if errors.Is(err, catalog.ErrUnknownProduct) {
		h.Logger.Warn("add of unknown product", zap.String("product", name))
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return models.Product{}, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up product"})
		return models.Product{}, false
	}
	return product, true
}
