package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/linjia/ai-closet/internal/domain/auth"
)

func authMiddleware(svc auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing authorization header", nil))
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "invalid authorization header", nil))
			return
		}
		token := strings.TrimSpace(parts[1])
		user, err := svc.Verify(c.Request.Context(), token)
		if err != nil {
			abortWithError(c, domainError(err))
			return
		}
		setUser(c, user)
		c.Next()
	}
}
