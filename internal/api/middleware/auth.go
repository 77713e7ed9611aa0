package middleware

import (
	"StudentQuiz/internal/pkg/commentarea"
	"StudentQuiz/internal/pkg/consts"
	"StudentQuiz/internal/pkg/logger"
	"StudentQuiz/internal/pkg/response"
	"StudentQuiz/internal/pkg/security"
	"context"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
)

const viewerKey = "viewer"

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, response.Unauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, response.Unauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		c.Set(logger.UserIDKey, claims.UserID)
		c.Set("roles", claims.Roles)
		c.Set(viewerKey, commentarea.Viewer{
			UserID:             claims.UserID,
			IsModerator:        claims.HasRole(consts.RoleManager),
			CanUnhideAnonymous: claims.HasRole(consts.RoleManager) || claims.HasRole(consts.RoleUnhideAnonymous),
		})

		newCtx := context.WithValue(c.Request.Context(), logger.UserIDKey, claims.UserID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}

// CurrentViewer 当前请求的评论区查看者，未经过鉴权时按角色信息重建
func CurrentViewer(c *gin.Context) commentarea.Viewer {
	if v, ok := c.Get(viewerKey); ok {
		if viewer, ok := v.(commentarea.Viewer); ok {
			return viewer
		}
	}
	roles := c.GetStringSlice("roles")
	return commentarea.Viewer{
		UserID:             c.GetUint64(logger.UserIDKey),
		IsModerator:        slices.Contains(roles, consts.RoleManager),
		CanUnhideAnonymous: slices.Contains(roles, consts.RoleManager) || slices.Contains(roles, consts.RoleUnhideAnonymous),
	}
}
