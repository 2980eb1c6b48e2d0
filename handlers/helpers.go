package handlers

import (
	"net/http"

	"dessert-cart/middleware"
	"dessert-cart/session"
	"dessert-cart/views"

	"github.com/gin-gonic/gin"
)

func currentSession(c *gin.Context) (*session.Session, bool) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Session not available"})
		return nil, false
	}
	return sess, true
}

func summaryModel(sess *session.Session) views.SummaryViewModel {
	order, visible := sess.Summary.Current()
	return views.NewSummaryViewModel(order, visible)
}

// backToStorefront answers storefront form posts with a redirect so a reload
// does not repeat the action.
func backToStorefront(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}
