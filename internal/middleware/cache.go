package middleware

import (
	"bytes"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashwinyue/osint-framework/internal/cache"
	"github.com/ashwinyue/osint-framework/internal/logger"
)

// HeaderCache 缓存命中头，取值 HIT 或 MISS
const HeaderCache = "X-Cache"

// bodyWriter 记录写出的响应体
type bodyWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CacheMiddleware 按快照版本和完整 URL 缓存 GET 的 200 响应
// 重载前开始的请求写入旧版本的键，不会被重载后的请求读到；generation 和 onLookup 可为 nil
func CacheMiddleware(store cache.Store, l *zap.Logger, generation func() uint64, onLookup func(hit bool)) gin.HandlerFunc {
	l = logger.OrNop(l)
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		var gen uint64
		if generation != nil {
			gen = generation()
		}
		key := strconv.FormatUint(gen, 10) + ":" + c.Request.URL.RequestURI()
		entry, ok, err := store.Get(ctx, key)
		if err != nil {
			l.Warn("response cache lookup failed", zap.String("key", key), zap.Error(err))
		}
		if onLookup != nil {
			onLookup(ok)
		}
		if ok {
			c.Header(HeaderCache, "HIT")
			c.Data(entry.Status, entry.ContentType, entry.Body)
			c.Abort()
			return
		}

		c.Header(HeaderCache, "MISS")
		w := &bodyWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Next()

		if w.Status() != http.StatusOK {
			return
		}
		e := &cache.Entry{
			Status:      w.Status(),
			ContentType: w.Header().Get("Content-Type"),
			Body:        w.body.Bytes(),
		}
		if err := store.Set(ctx, key, e); err != nil {
			l.Warn("response cache store failed", zap.String("key", key), zap.Error(err))
		}
	}
}
