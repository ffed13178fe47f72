package middleware

import (
	"strings"

	"campus-events/internal/global/database"
	"campus-events/internal/global/jwt"
	"campus-events/internal/global/response"
	"campus-events/internal/global/scope"
	"campus-events/internal/model"

	"github.com/gin-gonic/gin"
)

// Auth 校验 Bearer token 并写入身份；roles 为空时允许任意已登录身份
func Auth(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Fail(c, response.ErrUnauthorized)
			return
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.ErrTokenInvalid)
			return
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")

		payload, valid := jwt.ParseToken(token)
		if !valid {
			response.Fail(c, response.ErrTokenInvalid)
			return
		}
		identity, ok := scope.FromClaims(payload)
		if !ok {
			response.Fail(c, response.ErrTokenInvalid)
			return
		}
		if len(roles) > 0 && !hasRole(roles, payload.Role) {
			response.Fail(c, response.ErrForbidden)
			return
		}
		if err := scope.Verify(database.DB.WithContext(c.Request.Context()), identity); err != nil {
			response.Fail(c, err)
			return
		}
		c.Set(jwt.PayloadKey, payload)
		c.Set(scope.IdentityKey, identity)
		c.Next()
	}
}

func hasRole(roles []model.Role, role model.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
