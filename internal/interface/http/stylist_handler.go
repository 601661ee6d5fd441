package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linjia/ai-closet/internal/domain/stylist"
)

// ComposeOutfit generates one outfit for a free-text vibe.
func (h *Handler) ComposeOutfit(c *gin.Context) {
	var req stylist.ComposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	view, err := h.stylistSvc.Compose(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, view)
}

// PlanWeek generates outfits for Monday through Friday.
func (h *Handler) PlanWeek(c *gin.Context) {
	var req stylist.WeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	plan, err := h.stylistSvc.Week(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, plan)
}

// MatchInspiration recreates the style of an uploaded inspiration photo.
func (h *Handler) MatchInspiration(c *gin.Context) {
	photo, httpErr := readPhoto(c)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}
	weatherContext := c.PostForm("weatherContext")

	view, err := h.stylistSvc.MatchInspiration(c.Request.Context(), photo, weatherContext)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, view)
}
