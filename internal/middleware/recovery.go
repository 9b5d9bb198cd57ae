package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashwinyue/osint-framework/internal/handler"
)

// RecoveryMiddleware 恢复中间件，堆栈只写日志不返回给调用方
func RecoveryMiddleware(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				l.Error("panic recovered",
					zap.Any("panic", err),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", GetRequestID(c)),
					zap.ByteString("stack", debug.Stack()))
				handler.AbortWithError(c, http.StatusInternalServerError, handler.ErrKindInternal, "internal server error")
			}
		}()
		c.Next()
	}
}
