package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linjia/ai-closet/internal/domain/auth"
)

// Register creates a local account and returns a session token.
func (h *Handler) Register(c *gin.Context) {
	var creds auth.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	session, err := h.authSvc.Register(c.Request.Context(), creds)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusCreated, session)
}

// Login verifies credentials and returns a session token.
func (h *Handler) Login(c *gin.Context) {
	var creds auth.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	session, err := h.authSvc.Login(c.Request.Context(), creds)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.JSON(http.StatusOK, session)
}

// Me returns the authenticated account.
func (h *Handler) Me(c *gin.Context) {
	user, ok := getUser(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "not authenticated", nil))
		return
	}
	c.JSON(http.StatusOK, user)
}
