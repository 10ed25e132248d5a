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
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

// codeStatusName http状态码
var codeStatusName = [][]int{{100, 101}, {200, 206}, {300, 308}, {400, 417}, {500, 505}}

const (
	// RequestStats 请求总数
	RequestStats string = "requests"
	// ErrorStats 5xx 响应总数
	ErrorStats string = "errors"
)

// StatisticInterface 请求统计组件接口
type StatisticInterface interface {
	GetAllStats() map[string]uint64
	Incr(metric string)
	Get(metric string) uint64
	// GetUptime 运行时长，单位秒
	GetUptime() float64
}

// DefaultStatistic 请求统计指标
// 指标集合在构造时确定，之后只做原子自增
type DefaultStatistic struct {
	Metrics  map[string]*uint64
	startAt  time.Time
	register sync.Map
}

// NewDefaultStatistic 默认统计数据组件构造函数
func NewDefaultStatistic() *DefaultStatistic {
	m := map[string]*uint64{
		RequestStats: new(uint64),
		ErrorStats:   new(uint64),
	}
	for _, kind := range []RouteKind{APIRoute, StaticRoute, FeedRoute, FallbackRoute} {
		m[kind.GetTypeName()] = new(uint64)
	}
	for _, status := range codeStatusName {
		min, max := status[0], status[1]
		for i := min; i <= max; i++ {
			m[strconv.Itoa(i)] = new(uint64)
		}
	}
	return &DefaultStatistic{
		Metrics:  m,
		startAt:  time.Now(),
		register: sync.Map{},
	}
}

// Incr 指标加一，未知的指标直接忽略
func (s *DefaultStatistic) Incr(metric string) {
	v, ok := s.Metrics[metric]
	if !ok {
		return
	}
	atomic.AddUint64(v, 1)
	s.register.Store(metric, true)
}

// Get 获取某个指标的数值
func (s *DefaultStatistic) Get(metric string) uint64 {
	v, ok := s.Metrics[metric]
	if !ok {
		return 0
	}
	return atomic.LoadUint64(v)
}

// GetAllStats 所有出现过的指标
func (s *DefaultStatistic) GetAllStats() map[string]uint64 {
	result := make(map[string]uint64)
	s.register.Range(func(key any, _ any) bool {
		k := key.(string)
		result[k] = s.Get(k)
		return true
	})
	return result
}

func (s *DefaultStatistic) GetUptime() float64 {
	return decimal.NewFromFloat(time.Since(s.startAt).Seconds()).Round(2).InexactFloat64()
}
