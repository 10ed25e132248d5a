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
	"sort"
)

const (
	HeaderInjectionStageName  string = "header-injection"
	CacheSuppressionStageName string = "cache-suppression"
)

// PipelineOrder 响应阶段的执行顺序
// 禁缓存阶段必须在身份头注入之后执行
var PipelineOrder = []string{HeaderInjectionStageName, CacheSuppressionStageName}

// StageInterface 响应阶段接口
// 在下游handler结束对响应头的修改、响应头提交之前被调用
type StageInterface interface {
	// Apply 根据请求路径修改响应头
	Apply(path string, header http.Header)
	// GetName 阶段名
	GetName() string
	// GetPriority 优先级，数值越小越先执行
	GetPriority() int
}

// Stages 按优先级排序的响应阶段
type Stages []StageInterface

func (p Stages) Len() int           { return len(p) }
func (p Stages) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }
func (p Stages) Less(i, j int) bool { return p[i].GetPriority() < p[j].GetPriority() }

// Names 按执行顺序返回阶段名
func (p Stages) Names() []string {
	names := make([]string, 0, len(p))
	for _, stage := range p {
		names = append(names, stage.GetName())
	}
	return names
}

// NewPipelineStages 构造默认的响应阶段
func NewPipelineStages(identity Identity) Stages {
	stages := Stages{
		NewCacheSuppressionStage(),
		NewHeaderInjectionStage(identity),
	}
	sort.Stable(stages)
	return stages
}

// HeaderInjectionStage 为所有响应写入进程身份头
type HeaderInjectionStage struct {
	identity Identity
}

func NewHeaderInjectionStage(identity Identity) *HeaderInjectionStage {
	return &HeaderInjectionStage{identity: identity}
}

func (s *HeaderInjectionStage) Apply(_ string, header http.Header) {
	header.Set(HeaderVersion, s.identity.GetVersion())
	header.Set(HeaderPoweredBy, PoweredBy)
	header.Set(HeaderGithub, SourceURL)
	header.Set(HeaderServer, s.identity.GetAppName())
}

func (s *HeaderInjectionStage) GetName() string {
	return HeaderInjectionStageName
}

func (s *HeaderInjectionStage) GetPriority() int {
	return 100
}

// CacheSuppressionStage RSS 禁缓存
// 仅对订阅路径生效，包括 /static、/api 下以订阅后缀结尾的路径
type CacheSuppressionStage struct {
}

func NewCacheSuppressionStage() *CacheSuppressionStage {
	return &CacheSuppressionStage{}
}

func (s *CacheSuppressionStage) Apply(path string, header http.Header) {
	if !IsFeedPath(path) {
		return
	}
	header.Set("Content-Type", FeedContentType)
	header.Set("Cache-Control", FeedCacheControl)
	header.Set("Pragma", FeedPragma)
	header.Set("Expires", FeedExpires)
	// 头不存在时Del不做任何事
	header.Del("ETag")
	header.Del("Last-Modified")
}

func (s *CacheSuppressionStage) GetName() string {
	return CacheSuppressionStageName
}

func (s *CacheSuppressionStage) GetPriority() int {
	return 200
}
