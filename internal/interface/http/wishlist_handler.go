package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/linjia/ai-closet/internal/domain/wishlist"
)

// AnalyzeWishlistPhoto inspects a candidate purchase photo and flags likely
// wardrobe duplicates.
func (h *Handler) AnalyzeWishlistPhoto(c *gin.Context) {
	photo, httpErr := readPhoto(c)
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}

	analysis, err := h.wishlistSvc.Analyze(c.Request.Context(), photo)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// AddWishlistItem stores a wishlist entry.
func (h *Handler) AddWishlistItem(c *gin.Context) {
	var req wishlist.AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	item, err := h.wishlistSvc.Add(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusCreated, item)
}

// ListWishlistItems returns the wishlist newest first.
func (h *Handler) ListWishlistItems(c *gin.Context) {
	items, err := h.wishlistSvc.List(c.Request.Context())
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// DeleteWishlistItem removes one wishlist entry.
func (h *Handler) DeleteWishlistItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid item id", err))
		return
	}
	if err := h.wishlistSvc.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.Status(http.StatusNoContent)
}
