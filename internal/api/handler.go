package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"greenpoints-backend/config"
	"greenpoints-backend/internal/mw"
	"greenpoints-backend/internal/store"
	"greenpoints-backend/internal/web"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store store.Store
	cache *mw.ResponseCache
	cfg   *config.Config
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, cache *mw.ResponseCache, cfg *config.Config) *Handler {
	return &Handler{
		store: s,
		cache: cache,
		cfg:   cfg,
	}
}

// ledgerChanged drops cached leaderboards after a successful write.
func (h *Handler) ledgerChanged() {
	if h.cache != nil {
		h.cache.Invalidate()
	}
}

func actionIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// jsonError maps store errors onto JSON responses.
func jsonError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrActionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "action not found"})
	case errors.Is(err, store.ErrActionTypeNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action type"})
	default:
		log.Printf("Error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// inlineError renders the error fragment htmx swaps into the form.
func inlineError(c *gin.Context, status int, msg string) {
	c.HTML(status, web.FragmentError, msg)
}

// fragmentError maps store errors onto fragment responses.
func fragmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrActionNotFound):
		inlineError(c, http.StatusNotFound, "Action not found")
	case errors.Is(err, store.ErrActionTypeNotFound):
		inlineError(c, http.StatusBadRequest, "Unknown action type")
	default:
		log.Printf("Error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		inlineError(c, http.StatusInternalServerError, "Something went wrong")
	}
}
