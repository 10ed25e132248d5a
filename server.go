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
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

var serverLog *logrus.Entry = GetLogger("server")

const shutdownTimeout = 10 * time.Second

// ServerOption 服务构造参数
type ServerOption func(s *Server)

// ServerWithStatistic 请求统计组件
func ServerWithStatistic(statistic StatisticInterface) ServerOption {
	return func(s *Server) {
		s.statistic = statistic
	}
}

// ServerWithMiddlewares 追加在CORS之后、路由分发之前执行的中间件
func ServerWithMiddlewares(middlewares ...gin.HandlerFunc) ServerOption {
	return func(s *Server) {
		s.middlewares = append(s.middlewares, middlewares...)
	}
}

// Server http 服务
// 中间件顺序: Pipeline(响应阶段) -> AccessLogger -> CORS -> Recovery -> 路由表
type Server struct {
	identity    Identity
	settings    *AppSettings
	table       *RouteTable
	statistic   StatisticInterface
	middlewares []gin.HandlerFunc
	engine      *gin.Engine
}

// NewServer 构造服务，table 应当已经设置回落处理器
func NewServer(settings *AppSettings, table *RouteTable, opts ...ServerOption) *Server {
	s := &Server{
		identity:  NewIdentity(Version, settings.AppName),
		settings:  settings,
		table:     table,
		statistic: NewDefaultStatistic(),
	}
	for _, o := range opts {
		o(s)
	}
	s.engine = s.setUp()
	return s
}

func (s *Server) setUp() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(
		Pipeline(NewPipelineStages(s.identity)),
		AccessLogger(s.statistic),
		CORS(s.settings.CORS.AllowOrigins),
		Recovery(),
	)
	if len(s.middlewares) > 0 {
		engine.Use(s.middlewares...)
	}
	engine.Any("/*path", s.table.Dispatch)
	return engine
}

// GetIdentity 进程身份
func (s *Server) GetIdentity() Identity {
	return s.identity
}

// GetStatistic 请求统计组件
func (s *Server) GetStatistic() StatisticInterface {
	return s.statistic
}

// Handler 服务的入口handler
func (s *Server) Handler() http.Handler {
	if s.settings.Server.H2C {
		return h2c.NewHandler(s.engine, &http2.Server{})
	}
	return s.engine
}

// Serve 启动服务，ctx结束后优雅退出
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.settings.Server.Host, s.settings.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.settings.Server.ReadTimeout,
		WriteTimeout: s.settings.Server.WriteTimeout,
	}
	errChan := make(chan error, 1)
	go func() {
		serverLog.Infof("%s %s listen on: http://%s", s.identity.GetAppName(), s.identity.GetVersion(), addr)
		errChan <- server.ListenAndServe()
	}()
	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		serverLog.Infof("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
