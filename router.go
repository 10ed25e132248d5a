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
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var routerLog *logrus.Entry = GetLogger("router")

// RouteEntry 路由表中的一个条目
// 条目的优先级即注册顺序
type RouteEntry struct {
	Prefix  string
	Kind    RouteKind
	Handler gin.HandlerFunc
}

// match 路径等于前缀或者以 前缀+"/" 开头
func (r RouteEntry) match(path string) bool {
	if path == r.Prefix {
		return true
	}
	return strings.HasPrefix(path, r.Prefix) && path[len(r.Prefix)] == '/'
}

// RouteTableOption 路由表构造参数
type RouteTableOption func(t *RouteTable)

// RouteTableWithStatistic 路由分发计数组件
func RouteTableWithStatistic(statistic StatisticInterface) RouteTableOption {
	return func(t *RouteTable) {
		t.statistic = statistic
	}
}

// RouteTable 有序路由表
// 按注册顺序匹配，先注册的条目优先于后注册的条目以及回落处理器。
// 设置回落处理器后路由表即被封存，之后的注册属于装配错误，会直接panic。
// 封存后的路由表只读，可被并发请求共享
type RouteTable struct {
	entries   []RouteEntry
	fallback  *Fallback
	sealed    bool
	statistic StatisticInterface
}

// NewRouteTable 构造路由表
func NewRouteTable(opts ...RouteTableOption) *RouteTable {
	t := &RouteTable{
		entries: make([]RouteEntry, 0),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Register 注册一个路由条目
func (t *RouteTable) Register(kind RouteKind, prefix string, handler gin.HandlerFunc) {
	if t.sealed {
		panic(fmt.Errorf("%w: %s %s", ErrRouteTableSealed, kind.GetTypeName(), prefix))
	}
	if handler == nil {
		panic(fmt.Sprintf("nil handler for %s", prefix))
	}
	if err := checkPrefix(prefix); err != nil {
		panic(err)
	}
	t.entries = append(t.entries, RouteEntry{
		Prefix:  strings.TrimSuffix(prefix, "/"),
		Kind:    kind,
		Handler: handler,
	})
	routerLog.Debugf("Register %s route %s", kind.GetTypeName(), prefix)
}

// MountAPI 挂载api路由组，handler通常是一个独立的 *gin.Engine
func (t *RouteTable) MountAPI(prefix string, handler http.Handler) {
	t.Register(APIRoute, prefix, gin.WrapH(handler))
}

// MountFeed 挂载RSS路由组
func (t *RouteTable) MountFeed(prefix string, handler http.Handler) {
	t.Register(FeedRoute, prefix, gin.WrapH(handler))
}

// MountStatic 挂载静态文件目录
func (t *RouteTable) MountStatic(prefix string, handler http.Handler) {
	t.Register(StaticRoute, prefix, gin.WrapH(handler))
}

// SetFallback 设置回落处理器并封存路由表
func (t *RouteTable) SetFallback(fallback *Fallback) {
	if t.sealed {
		panic(fmt.Errorf("%w: fallback already set", ErrRouteTableSealed))
	}
	t.fallback = fallback
	t.sealed = true
}

// Entries 已注册的条目，按优先级排列
func (t *RouteTable) Entries() []RouteEntry {
	entries := make([]RouteEntry, len(t.entries))
	copy(entries, t.entries)
	return entries
}

// Match 返回第一个匹配路径的条目
func (t *RouteTable) Match(path string) (RouteEntry, bool) {
	for _, entry := range t.entries {
		if entry.match(path) {
			return entry, true
		}
	}
	return RouteEntry{}, false
}

// Dispatch 分发请求
// 根路径是回落处理器的别名，子路径为空
func (t *RouteTable) Dispatch(c *gin.Context) {
	path := c.Request.URL.Path
	if path != "/" {
		if entry, ok := t.Match(path); ok {
			t.incr(entry.Kind)
			entry.Handler(c)
			return
		}
	}
	t.incr(FallbackRoute)
	if t.fallback == nil {
		writeNotFound(c)
		return
	}
	if path == "/" {
		t.fallback.ServeRoot(c)
		return
	}
	t.fallback.Handle(c)
}

func (t *RouteTable) incr(kind RouteKind) {
	if t.statistic != nil {
		t.statistic.Incr(kind.GetTypeName())
	}
}

func checkPrefix(prefix string) error {
	if !strings.HasPrefix(prefix, "/") || strings.TrimSuffix(prefix, "/") == "" {
		return &InvalidPrefixError{Prefix: prefix}
	}
	return nil
}
