package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"greenpoints-backend/internal/model"
	"greenpoints-backend/internal/mw"
)

// ActionResponse represents one logged action in the JSON API.
type ActionResponse struct {
	ID            int64     `json:"id"`
	ActionName    string    `json:"action_name"`
	PointsEarned  int64     `json:"points_earned"`
	CarbonSavedKg float64   `json:"carbon_saved_kg"`
	LoggedAt      time.Time `json:"logged_at"`
}

func newActionResponse(a *model.Action) ActionResponse {
	return ActionResponse{
		ID:            a.ID,
		ActionName:    a.ActionType.Name,
		PointsEarned:  a.PointsEarned,
		CarbonSavedKg: a.CarbonSavedKg,
		LoggedAt:      a.LoggedAt,
	}
}

// GetActions handles GET /api/actions.
func (h *Handler) GetActions(c *gin.Context) {
	user := mw.CurrentUser(c)

	actions, err := h.store.Actions(c.Request.Context(), user.ID)
	if err != nil {
		jsonError(c, err)
		return
	}

	responses := make([]ActionResponse, 0, len(actions))
	for i := range actions {
		responses = append(responses, newActionResponse(&actions[i]))
	}
	c.JSON(http.StatusOK, responses)
}

type updateActionRequest struct {
	PointsEarned *int64 `json:"points_earned" binding:"required"`
}

// UpdateAction handles PUT /api/actions/:id.
func (h *Handler) UpdateAction(c *gin.Context) {
	id, ok := actionIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid action id"})
		return
	}

	var req updateActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	action, err := h.store.UpdateActionPoints(c.Request.Context(), mw.CurrentUser(c).ID, id, *req.PointsEarned)
	if err != nil {
		jsonError(c, err)
		return
	}
	h.ledgerChanged()

	c.JSON(http.StatusOK, newActionResponse(action))
}

// DeleteAction handles DELETE /api/actions/:id.
func (h *Handler) DeleteAction(c *gin.Context) {
	id, ok := actionIDParam(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid action id"})
		return
	}

	if _, err := h.store.DeleteAction(c.Request.Context(), mw.CurrentUser(c).ID, id); err != nil {
		jsonError(c, err)
		return
	}
	h.ledgerChanged()

	c.Status(http.StatusNoContent)
}

// MeResponse is the signed-in user's profile.
type MeResponse struct {
	ID            int64  `json:"id"`
	Email         string `json:"email"`
	TotalPoints   int64  `json:"total_points"`
	CurrentStreak int    `json:"current_streak"`
	DormName      string `json:"dorm_name"`
}

// GetMe handles GET /api/me.
func (h *Handler) GetMe(c *gin.Context) {
	user := mw.CurrentUser(c)
	c.JSON(http.StatusOK, MeResponse{
		ID:            user.ID,
		Email:         user.Email,
		TotalPoints:   user.TotalPoints,
		CurrentStreak: user.CurrentStreak,
		DormName:      user.DormName(),
	})
}

// DormResponse represents one leaderboard entry.
type DormResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	TotalPoints int64  `json:"total_points"`
}

// GetDorms handles GET /api/dorms, highest total first.
func (h *Handler) GetDorms(c *gin.Context) {
	dorms, err := h.store.Leaderboard(c.Request.Context())
	if err != nil {
		log.Printf("Error loading leaderboard: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve dorms"})
		return
	}

	responses := make([]DormResponse, 0, len(dorms))
	for _, d := range dorms {
		responses = append(responses, DormResponse{ID: d.ID, Name: d.Name, TotalPoints: d.TotalPoints})
	}
	c.JSON(http.StatusOK, responses)
}

// GetActionTypes handles GET /api/action-types.
func (h *Handler) GetActionTypes(c *gin.Context) {
	types, err := h.store.ActionTypes(c.Request.Context())
	if err != nil {
		log.Printf("Error loading action types: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve action types"})
		return
	}
	c.JSON(http.StatusOK, types)
}
