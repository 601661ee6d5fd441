package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/linjia/ai-closet/internal/domain/wardrobe"
)

// AddWardrobeItem accepts a multipart photo upload and catalogs it.
func (h *Handler) AddWardrobeItem(c *gin.Context) {
	photo, httpErr := readPhoto(c)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}

	item, err := h.wardrobeSvc.AddFromPhoto(c.Request.Context(), photo)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ListWardrobeItems returns the wardrobe, optionally narrowed by category
// and color facets.
func (h *Handler) ListWardrobeItems(c *gin.Context) {
	filter := wardrobe.Filter{
		Category: c.Query("category"),
		Color:    c.Query("color"),
	}
	items, err := h.wardrobeSvc.List(c.Request.Context(), filter)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// DeleteWardrobeItem removes one item and its photo.
func (h *Handler) DeleteWardrobeItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid item id", err))
		return
	}
	if err := h.wardrobeSvc.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.Status(http.StatusNoContent)
}
