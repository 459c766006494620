package middleware

import (
	"github.com/gin-gonic/gin"
)

// RateLimit 限流占位，目前直接放行。
// TODO: 接入按 IP 的令牌桶后替换这里的直通实现。
func RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}
