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
	"github.com/gin-gonic/gin"
)

// stagedWriter 在响应头提交前依次执行响应阶段
// gin 的 WriteHeader 只记录状态码，真正写出发生在 WriteHeaderNow/Write，
// 因此所有提交路径都需要先执行 apply
type stagedWriter struct {
	gin.ResponseWriter
	path    string
	stages  Stages
	applied bool
}

func newStagedWriter(w gin.ResponseWriter, path string, stages Stages) *stagedWriter {
	return &stagedWriter{
		ResponseWriter: w,
		path:           path,
		stages:         stages,
	}
}

func (w *stagedWriter) apply() {
	if w.applied {
		return
	}
	w.applied = true
	header := w.ResponseWriter.Header()
	for _, stage := range w.stages {
		stage.Apply(w.path, header)
	}
}

func (w *stagedWriter) WriteHeaderNow() {
	if !w.Written() {
		w.apply()
	}
	w.ResponseWriter.WriteHeaderNow()
}

func (w *stagedWriter) Write(data []byte) (int, error) {
	w.apply()
	return w.ResponseWriter.Write(data)
}

func (w *stagedWriter) WriteString(s string) (int, error) {
	w.apply()
	return w.ResponseWriter.WriteString(s)
}

func (w *stagedWriter) Flush() {
	w.apply()
	w.ResponseWriter.Flush()
}

// Pipeline 响应阶段中间件，必须注册为最外层的中间件
// 保证无论由哪个路由或回落处理器响应，阶段都只执行一次
func Pipeline(stages Stages) gin.HandlerFunc {
	return func(c *gin.Context) {
		w := newStagedWriter(c.Writer, c.Request.URL.Path, stages)
		c.Writer = w
		c.Next()
		w.WriteHeaderNow()
	}
}
