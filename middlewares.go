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
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var accessLog *logrus.Entry = GetLogger("access")

// AccessLogger 访问日志与状态码统计
func AccessLogger(statistic StatisticInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		c.Next()
		status := c.Writer.Status()
		if statistic != nil {
			statistic.Incr(RequestStats)
			statistic.Incr(strconv.Itoa(status))
			if status >= http.StatusInternalServerError {
				statistic.Incr(ErrorStats)
			}
		}
		latency := decimal.NewFromFloat(float64(time.Since(start).Microseconds()) / 1000).Round(2)
		entry := accessLog.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    path,
			"class":   ClassifyPath(path).GetTypeName(),
			"status":  status,
			"latency": latency.String() + "ms",
			"client":  c.ClientIP(),
		})
		if status >= http.StatusInternalServerError {
			entry.Error("request failed")
			return
		}
		entry.Info("request done")
	}
}

// Recovery 捕获handler panic，响应500
// 位于Pipeline之内，错误响应同样会经过响应阶段
func Recovery() gin.HandlerFunc {
	log := GetLogger("recovery")
	return gin.CustomRecoveryWithWriter(log.WriterLevel(logrus.ErrorLevel), func(c *gin.Context, err interface{}) {
		log.Errorf("handler panic on %s: %v", c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	})
}
