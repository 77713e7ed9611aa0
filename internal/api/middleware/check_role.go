package middleware

import (
	"StudentQuiz/internal/pkg/response"
	"slices"

	"github.com/gin-gonic/gin"
)

// CheckRoles 检查当前用户是否拥有至少一个指定的角色
func CheckRoles(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roles := c.GetStringSlice("roles")

		if !slices.ContainsFunc(requiredRoles, func(r string) bool { return slices.Contains(roles, r) }) {
			response.Fail(c, response.Forbidden, "权限不足：需要活动管理员角色")
			c.Abort()
			return
		}

		c.Next()
	}
}
