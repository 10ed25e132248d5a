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
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

var fallbackLog *logrus.Entry = GetLogger("fallback")

const readChunkSize = 32 * 1024

// Fallback SPA 回落处理器
// 只在路由表中没有条目命中时被调用
type Fallback struct {
	fs        afero.Fs
	index     string
	staticDir string
}

// NewFallback 构造回落处理器
// index 为SPA入口文件，staticDir 用于查找 favicon.ico 等根目录静态文件
func NewFallback(fs afero.Fs, index string, staticDir string) *Fallback {
	return &Fallback{
		fs:        fs,
		index:     index,
		staticDir: staticDir,
	}
}

// Handle 以请求路径作为子路径执行回落逻辑
func (f *Fallback) Handle(c *gin.Context) {
	f.Serve(c, strings.TrimPrefix(c.Request.URL.Path, "/"))
}

// ServeRoot 根路径，子路径为空，总是尝试返回SPA入口
func (f *Fallback) ServeRoot(c *gin.Context) {
	f.Serve(c, "")
}

// Serve 回落逻辑
func (f *Fallback) Serve(c *gin.Context, subPath string) {
	switch ClassifyPath(subPath) {
	case ReservedPrefixPath:
		writeNotFound(c)
		return
	case StaticFilenamePath:
		f.serveStaticFile(c, subPath)
		return
	}
	data, err := readFileContext(c.Request.Context(), f.fs, f.index)
	if err != nil {
		f.handleReadError(c, err)
		return
	}
	c.Data(http.StatusOK, HTMLContentType, data)
}

// serveStaticFile 根目录静态文件只从静态目录读取，缺失时返回404，不返回SPA入口
func (f *Fallback) serveStaticFile(c *gin.Context, name string) {
	data, err := readFileContext(c.Request.Context(), f.fs, filepath.Join(f.staticDir, name))
	if err != nil {
		f.handleReadError(c, err)
		return
	}
	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, data)
}

func (f *Fallback) handleReadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, os.ErrNotExist):
		fallbackLog.Debugf("%s not found", c.Request.URL.Path)
		writeNotFound(c)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		fallbackLog.Debugf("read aborted %s: %s", c.Request.URL.Path, err.Error())
		c.AbortWithStatus(http.StatusRequestTimeout)
	default:
		fallbackLog.Errorf("read %s error: %s", c.Request.URL.Path, err.Error())
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}

func writeNotFound(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Not Found"})
}

// readFileContext 读取文件，每读一块检查一次ctx
func readFileContext(ctx context.Context, fs afero.Fs, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	file, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrNotExist}
	}
	var buf bytes.Buffer
	chunk := make([]byte, readChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := file.Read(chunk)
		buf.Write(chunk[:n])
		if err == io.EOF {
			return buf.Bytes(), nil
		}
		if err != nil {
			return nil, err
		}
	}
}
