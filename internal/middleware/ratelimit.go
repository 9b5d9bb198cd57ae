package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/ashwinyue/osint-framework/internal/handler"
)

const maxTrackedClients = 10000

// RateLimiter 按客户端 IP 的令牌桶，限流器表由带过期的 LRU 约束大小
type RateLimiter struct {
	mu       sync.Mutex
	limiters *expirable.LRU[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
}

// NewRateLimiter 每个 window 内允许 requests 次请求，burst 为桶容量
func NewRateLimiter(requests int, window time.Duration, burst int) *RateLimiter {
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Second
	}
	if burst <= 0 {
		burst = requests
	}
	return &RateLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](maxTrackedClients, nil, window),
		limit:    rate.Limit(float64(requests) / window.Seconds()),
		burst:    burst,
	}
}

// Allow 消耗 key 的一个令牌
func (r *RateLimiter) Allow(key string) bool {
	return r.limiter(key).Allow()
}

// RetryAfter 令牌恢复一个所需的秒数
func (r *RateLimiter) RetryAfter() int {
	return int(math.Ceil(1 / float64(r.limit)))
}

func (r *RateLimiter) limiter(key string) *rate.Limiter {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l, ok := r.limiters.Get(key); ok {
		return l
	}
	l := rate.NewLimiter(r.limit, r.burst)
	r.limiters.Add(key, l)
	return l
}

// RateLimitMiddleware 超出限额返回 429，onLimited 可为 nil
func RateLimitMiddleware(rl *RateLimiter, onLimited func()) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.Allow(c.ClientIP()) {
			c.Next()
			return
		}
		if onLimited != nil {
			onLimited()
		}
		c.Header("Retry-After", strconv.Itoa(rl.RetryAfter()))
		handler.AbortWithError(c, http.StatusTooManyRequests, handler.ErrKindRateLimited,
			"too many requests, please try again later")
	}
}
