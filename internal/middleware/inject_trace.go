package middleware

import (
	"github.com/gin-gonic/gin"

	"server-match/internal/utils"
)

func InjectTrace() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceId := utils.GenerateTraceId()
		c.Set(utils.TraceIdKey.String(), traceId)
		c.Header("X-Trace-Id", traceId)
		c.Next()
	}
}
