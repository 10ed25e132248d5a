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

import "strings"

// ClassifyPath 对请求路径进行分类，用于回落决策
// 多个规则同时命中时按 reserved-prefix > static-filename > feed-path 的顺序取值，
// 保证api与静态资源路径永远不会被SPA回落接管。
// 响应是否禁缓存由 IsFeedPath 单独判断，不受这里的优先级影响
func ClassifyPath(path string) PathClass {
	trimmed := strings.TrimPrefix(path, "/")
	if hasAnyPrefix(trimmed, reservedPrefixes) {
		return ReservedPrefixPath
	}
	if _, ok := staticFilenames[trimmed]; ok {
		return StaticFilenamePath
	}
	if isFeed(trimmed) {
		return FeedPath
	}
	return OtherPath
}

// IsFeedPath 路径以 feed/rss 开头，或者以 .xml/.rss/.atom 结尾
// 后缀检查与前缀无关，/static/a.xml 与 /api/v1/export/all.rss 同样属于订阅路径
func IsFeedPath(path string) bool {
	return isFeed(strings.TrimPrefix(path, "/"))
}

func isFeed(trimmed string) bool {
	return hasAnyPrefix(trimmed, feedPrefixes) || hasAnySuffix(trimmed, feedExtensions)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}
