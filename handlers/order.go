package handlers

import (
	"errors"
	"net/http"

	"dessert-cart/cart"
	"dessert-cart/dtos"
	"dessert-cart/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	Logger *zap.Logger
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, orderResponse(sess))
}

func (h *OrderHandler) ConfirmOrder(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	if _, err := sess.Summary.Confirm(); err != nil {
		if errors.Is(err, cart.ErrEmptyCart) {
			c.JSON(http.StatusConflict, gin.H{"error": "Cart is empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm order"})
		return
	}

	c.JSON(http.StatusOK, orderResponse(sess))
}

func (h *OrderHandler) StartNewOrder(c *gin.Context) {
	h.closeSummary(c, (*cart.Summary).StartNewOrder)
}

func (h *OrderHandler) DismissOrder(c *gin.Context) {
	h.closeSummary(c, (*cart.Summary).Dismiss)
}

func (h *OrderHandler) closeSummary(c *gin.Context, closeSummary func(*cart.Summary) error) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	if err := closeSummary(sess.Summary); err != nil {
		if errors.Is(err, cart.ErrSummaryHidden) {
			c.JSON(http.StatusConflict, gin.H{"error": "No order summary is open"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to close order summary"})
		return
	}

	c.JSON(http.StatusOK, orderResponse(sess))
}

// Storefront form actions. Stale posts (an empty cart, an already closed
// summary) are logged and redirected without changing anything.

func (h *OrderHandler) ConfirmForm(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	if _, err := sess.Summary.Confirm(); err != nil {
		h.Logger.Warn("order not confirmed", zap.String("session_id", sess.ID.String()), zap.Error(err))
	}
	backToStorefront(c)
}

func (h *OrderHandler) NewOrderForm(c *gin.Context) {
	h.closeForm(c, (*cart.Summary).StartNewOrder)
}

func (h *OrderHandler) DismissForm(c *gin.Context) {
	h.closeForm(c, (*cart.Summary).Dismiss)
}

func (h *OrderHandler) closeForm(c *gin.Context, closeSummary func(*cart.Summary) error) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	if err := closeSummary(sess.Summary); err != nil {
		h.Logger.Warn("order summary not closed", zap.String("session_id", sess.ID.String()), zap.Error(err))
	}
	backToStorefront(c)
}

func orderResponse(sess *session.Session) dtos.OrderResponse {
	return dtos.OrderResponse{
		State:   sess.Summary.State().String(),
		Summary: summaryModel(sess),
		Cart:    sess.CartView.Model(),
	}
}
