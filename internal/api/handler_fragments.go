package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"greenpoints-backend/internal/mw"
	"greenpoints-backend/internal/web"
)

type logActionForm struct {
	ActionTypeID int64 `form:"action_type_id" binding:"required,gt=0"`
}

// LogActionFragment handles POST /fragments/actions/log and renders the new row.
func (h *Handler) LogActionFragment(c *gin.Context) {
	var form logActionForm
	if err := c.ShouldBind(&form); err != nil {
		inlineError(c, http.StatusBadRequest, "Unknown action type")
		return
	}

	action, err := h.store.LogAction(c.Request.Context(), mw.CurrentUser(c).ID, form.ActionTypeID)
	if err != nil {
		fragmentError(c, err)
		return
	}
	h.ledgerChanged()

	c.HTML(http.StatusOK, web.FragmentActionRow, web.RowView{Action: action})
}

// DeleteActionFragment handles DELETE /fragments/actions/:id. The row is
// replaced with nothing whether or not the action existed.
func (h *Handler) DeleteActionFragment(c *gin.Context) {
	id, ok := actionIDParam(c)
	if !ok {
		c.String(http.StatusOK, "")
		return
	}

	if _, err := h.store.DeleteAction(c.Request.Context(), mw.CurrentUser(c).ID, id); err == nil {
		h.ledgerChanged()
	} else {
		log.Printf("Delete of action %d ignored: %v", id, err)
	}
	c.String(http.StatusOK, "")
}

// EditActionFragment handles GET /fragments/actions/:id/edit.
func (h *Handler) EditActionFragment(c *gin.Context) {
	id, ok := actionIDParam(c)
	if !ok {
		inlineError(c, http.StatusNotFound, "Action not found")
		return
	}

	action, err := h.store.Action(c.Request.Context(), mw.CurrentUser(c).ID, id)
	if err != nil {
		fragmentError(c, err)
		return
	}
	c.HTML(http.StatusOK, web.FragmentActionRow, web.RowView{Action: action, EditMode: true})
}

type updatePointsForm struct {
	PointsEarned *int64 `form:"points_earned" binding:"required"`
}

// UpdateActionFragment handles PUT /fragments/actions/:id.
func (h *Handler) UpdateActionFragment(c *gin.Context) {
	id, ok := actionIDParam(c)
	if !ok {
		inlineError(c, http.StatusNotFound, "Action not found")
		return
	}

	var form updatePointsForm
	if err := c.ShouldBind(&form); err != nil {
		inlineError(c, http.StatusBadRequest, "Points must be a whole number")
		return
	}

	action, err := h.store.UpdateActionPoints(c.Request.Context(), mw.CurrentUser(c).ID, id, *form.PointsEarned)
	if err != nil {
		fragmentError(c, err)
		return
	}
	h.ledgerChanged()

	c.HTML(http.StatusOK, web.FragmentActionRow, web.RowView{Action: action})
}

// LeaderboardFragment handles GET /fragments/leaderboard.
func (h *Handler) LeaderboardFragment(c *gin.Context) {
	dorms, err := h.store.Leaderboard(c.Request.Context())
	if err != nil {
		fragmentError(c, err)
		return
	}
	c.HTML(http.StatusOK, web.FragmentBoard, dorms)
}
