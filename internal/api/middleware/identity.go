package middleware

import (
	"Townsquare/internal/api/config"
	"Townsquare/internal/pkg/response"
	"context"
	"strconv"

	"github.com/gin-gonic/gin"
)

// IdentityMiddleware 读取网关注入的 X-User-ID 并写入 Context。
// 身份认证由上游聊天网关完成，这里只做透传校验。
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw == "" {
			response.Fail(c, response.Unauthorized, "缺少用户标识")
			c.Abort()
			return
		}

		userID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || userID == 0 {
			response.Fail(c, response.Unauthorized, "用户标识非法")
			c.Abort()
			return
		}

		c.Set("user_id", userID)

		newCtx := context.WithValue(c.Request.Context(), "user_id", userID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}

// RequireModerator 只放行配置中的审核员
func RequireModerator(cfg *config.Config) gin.HandlerFunc {
	moderators := make(map[uint64]struct{}, len(cfg.Telegram.ModeratorIDs))
	for _, id := range cfg.Telegram.ModeratorIDs {
		moderators[id] = struct{}{}
	}

	return func(c *gin.Context) {
		userID := c.GetUint64("user_id")
		if _, ok := moderators[userID]; !ok {
			response.Fail(c, response.Forbidden, "没有审核权限")
			c.Abort()
			return
		}
		c.Next()
	}
}
