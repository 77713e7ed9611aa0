package middleware

import (
	"StudentQuiz/internal/pkg/consts"
	"context"
	"strings"

	"github.com/gin-gonic/gin"
)

// BaseURLMiddleware 推断站点根地址，用于拼接用户主页与举报链接
// 只信任反向代理头和 Host，不使用 Referer
func BaseURLMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme := "http"
		if c.Request.TLS != nil || strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https") {
			scheme = "https"
		}
		host := c.GetHeader("X-Forwarded-Host")
		if i := strings.IndexByte(host, ','); i >= 0 {
			host = host[:i]
		}
		host = strings.TrimSpace(host)
		if host == "" {
			host = c.Request.Host
		}

		ctx := context.WithValue(c.Request.Context(), consts.BaseURL, scheme+"://"+host)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
