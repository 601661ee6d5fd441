package http

import (
	"github.com/gin-gonic/gin"

	"github.com/linjia/ai-closet/internal/domain/auth"
)

const authUserKey = "auth_user"

func setUser(c *gin.Context, user auth.User) {
	c.Set(authUserKey, user)
}

func getUser(c *gin.Context) (auth.User, bool) {
	value, ok := c.Get(authUserKey)
	if !ok {
		return auth.User{}, false
	}
	user, ok := value.(auth.User)
	return user, ok
}
