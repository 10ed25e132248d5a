// MIT License

// Copyright (c) 2023 wetrycode

// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:

// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.

// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package werss

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/ratelimit"
)

// LimitInterface 限速器接口
type LimitInterface interface {
	// CheckAndWaitLimiterPass 检查当前速率
	// 如果达到上限则等待，ctx 结束时返回 ctx 的错误
	CheckAndWaitLimiterPass(ctx context.Context) error
}

// DefaultLimiter 默认的限速器
type DefaultLimiter struct {
	limiter ratelimit.Limiter
}

// NewDefaultLimiter 创建一个新的限速器
// limitRate 每秒最大请求数，<=0 时不限速
func NewDefaultLimiter(limitRate int) *DefaultLimiter {
	if limitRate <= 0 {
		return &DefaultLimiter{limiter: ratelimit.NewUnlimited()}
	}
	return &DefaultLimiter{
		limiter: ratelimit.New(limitRate, ratelimit.WithoutSlack),
	}
}

func (d *DefaultLimiter) CheckAndWaitLimiterPass(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.limiter.Take()
	// 排队期间客户端可能已经断开
	return ctx.Err()
}

// LimitMiddleware 请求限速中间件
func LimitMiddleware(limiter LimitInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := limiter.CheckAndWaitLimiterPass(c.Request.Context())
		switch {
		case err == nil:
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			c.AbortWithStatus(http.StatusRequestTimeout)
			return
		default:
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
			return
		}
		c.Next()
	}
}
