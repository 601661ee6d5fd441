package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/linjia/ai-closet/internal/domain/schedule"
)

// AddScheduleEvent stores a daily schedule entry.
func (h *Handler) AddScheduleEvent(c *gin.Context) {
	var req schedule.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	event, err := h.scheduleSvc.Add(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusCreated, event)
}

// ListScheduleEvents returns the day's events in chronological order.
func (h *Handler) ListScheduleEvents(c *gin.Context) {
	events, err := h.scheduleSvc.List(c.Request.Context())
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// DeleteScheduleEvent removes one event.
func (h *Handler) DeleteScheduleEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid event id", err))
		return
	}
	if err := h.scheduleSvc.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.Status(http.StatusNoContent)
}
