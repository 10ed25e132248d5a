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

// Version 当前构建版本
// 可以通过 -ldflags "-X github.com/wetrycode/werss.Version=x.y.z" 覆盖
var Version = "1.4.6"

// PathClass 请求路径分类
type PathClass int

const (
	// OtherPath 普通路径，允许回落到SPA入口
	OtherPath PathClass = iota
	// ReservedPrefixPath api、assets、static 前缀的路径
	ReservedPrefixPath
	// StaticFilenamePath 根目录下的固定静态文件
	StaticFilenamePath
	// FeedPath 输出RSS内容的路径
	FeedPath
)

// GetTypeName 获取路径分类名
func (p PathClass) GetTypeName() string {
	switch p {
	case ReservedPrefixPath:
		return "reserved-prefix"
	case StaticFilenamePath:
		return "static-filename"
	case FeedPath:
		return "feed-path"
	case OtherPath:
		return "other"
	}
	return "unknown"
}

func (p PathClass) String() string {
	return p.GetTypeName()
}

// RouteKind 路由表条目类型
type RouteKind int

const (
	APIRoute RouteKind = iota
	StaticRoute
	FeedRoute
	FallbackRoute
)

// GetTypeName 获取路由类型名，同时作为统计指标名
func (k RouteKind) GetTypeName() string {
	switch k {
	case APIRoute:
		return "api"
	case StaticRoute:
		return "static"
	case FeedRoute:
		return "feed"
	case FallbackRoute:
		return "fallback"
	}
	return "unknown"
}

func (k RouteKind) String() string {
	return k.GetTypeName()
}

// 注入的响应头
const (
	HeaderVersion   = "X-Version"
	HeaderPoweredBy = "X-Powered-By"
	HeaderGithub    = "GITHUB"
	HeaderServer    = "Server"
)

const (
	PoweredBy      = "Rachel"
	SourceURL      = "https://github.com/rachelos/we-mp-rss"
	DefaultAppName = "WeRSS"
)

// RSS 禁缓存相关的响应头取值
const (
	FeedContentType     = "application/rss+xml; charset=utf-8"
	FeedCacheControl    = "no-store, no-cache, must-revalidate, proxy-revalidate, max-age=0"
	FeedPragma          = "no-cache"
	FeedExpires         = "0"
	HTMLContentType     = "text/html; charset=utf-8"
	DefaultAPIBase      = "/api/v1"
	DefaultStaticDir    = "static"
	DefaultAssetsDir    = "static/assets"
	DefaultFilesDir     = "data/files"
	DefaultSPAIndexFile = "static/index.html"
)

// reservedPrefixes 不允许被SPA回落拦截的前缀
var reservedPrefixes = []string{"api", "assets", "static"}

// staticFilenames 根目录下不允许回落到SPA的文件
var staticFilenames = map[string]struct{}{
	"favicon.ico": {},
	"vite.svg":    {},
	"logo.svg":    {},
}

var feedPrefixes = []string{"feed", "rss"}

var feedExtensions = []string{".xml", ".rss", ".atom"}
