package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"greenpoints-backend/internal/mw"
	"greenpoints-backend/internal/web"
)

// Index renders the landing page with the login and registration forms.
func (h *Handler) Index(c *gin.Context) {
	dorms, err := h.store.Dorms(c.Request.Context())
	if err != nil {
		log.Printf("Error loading dorms: %v", err)
		c.String(http.StatusInternalServerError, "Failed to load dorms")
		return
	}
	c.HTML(http.StatusOK, web.PageIndex, web.IndexView{Dorms: dorms})
}

// Dashboard renders the signed-in user's page.
func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	view := web.DashboardView{User: mw.CurrentUser(c)}

	var err error
	if view.ActionTypes, err = h.store.ActionTypes(ctx); err == nil {
		if view.Actions, err = h.store.Actions(ctx, view.User.ID); err == nil {
			view.Dorms, err = h.store.Leaderboard(ctx)
		}
	}
	if err != nil {
		log.Printf("Error loading dashboard for user %d: %v", view.User.ID, err)
		c.String(http.StatusInternalServerError, "Failed to load dashboard")
		return
	}

	c.HTML(http.StatusOK, web.PageDashboard, view)
}

// Healthz reports whether the database answers.
func (h *Handler) Healthz(c *gin.Context) {
	if err := h.store.Ping(c.Request.Context()); err != nil {
		log.Printf("Health check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
