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

package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/wetrycode/werss"
)

var apiLog *logrus.Entry = werss.GetLogger("api")

const healthCheckTimeout = 3 * time.Second

// HealthCheck 依赖健康检查，例如 redis ping
type HealthCheck func(ctx context.Context) error

// WeRSSAPI 系统接口路由组
// 业务接口(认证、文章、公众号、标签、导出、任务)由各自的路由注册到 G 上
type WeRSSAPI struct {
	G         *gin.Engine
	Base      string
	identity  werss.Identity
	statistic werss.StatisticInterface
	health    HealthCheck
}

type sysInfoResp struct {
	AppName   string            `json:"app_name"`
	Version   string            `json:"version"`
	ProcessId string            `json:"process_id"`
	Uptime    float64           `json:"uptime"`
	Dispatch  map[string]uint64 `json:"dispatch"`
}

func (t *WeRSSAPI) info(ctx *gin.Context) {
	rsp := sysInfoResp{
		AppName:   t.identity.GetAppName(),
		Version:   t.identity.GetVersion(),
		ProcessId: werss.ProcessId,
		Uptime:    t.statistic.GetUptime(),
		Dispatch:  t.statistic.GetAllStats(),
	}
	appG := Gin{Ctx: ctx}
	appG.Response(http.StatusOK, SUCCESS, rsp)
}

func (t *WeRSSAPI) healthz(ctx *gin.Context) {
	appG := Gin{Ctx: ctx}
	if t.health != nil {
		c, cancel := context.WithTimeout(ctx.Request.Context(), healthCheckTimeout)
		defer cancel()
		if err := t.health(c); err != nil {
			apiLog.Errorf("health check error:%s", err.Error())
			appG.Response(http.StatusServiceUnavailable, REDIS_CONNECT_ERROR, nil)
			return
		}
	}
	appG.Response(http.StatusOK, APP_HEALTH_OK, nil)
}

// Group 业务路由组挂载点
func (t *WeRSSAPI) Group(relativePath string) *gin.RouterGroup {
	return t.G.Group(t.Base).Group(relativePath)
}

// NewAPI 构造系统接口路由组，base 为api前缀，如 /api/v1
func NewAPI(base string, identity werss.Identity, statistic werss.StatisticInterface, health HealthCheck) *WeRSSAPI {
	API := &WeRSSAPI{
		Base:      "/" + strings.Trim(base, "/"),
		identity:  identity,
		statistic: statistic,
		health:    health,
	}
	g := SetUp()

	sysRouter := g.Group(API.Base + "/sys")
	sysRouter.GET("/info", API.info)
	sysRouter.GET("/health", API.healthz)
	API.G = g
	return API
}
