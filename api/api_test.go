/**
 * Copyright (c) 2023 wetrycode
 *
 * This software is released under the MIT License.
 * https://opensource.org/licenses/MIT
 */


package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/smartystreets/goconvey/convey"
	"github.com/wetrycode/werss"
)

type envelope struct {
	APIVersion string          `json:"api"`
	Code       int             `json:"code"`
	Message    string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func doAPIRequest(g *gin.Engine, method string, path string) (*httptest.ResponseRecorder, *envelope) {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	g.ServeHTTP(rec, req)
	rsp := &envelope{}
	_ = json.Unmarshal(rec.Body.Bytes(), rsp)
	return rec, rsp
}

func TestSysAPI(t *testing.T) {
	identity := werss.NewIdentity("9.9.9", "MyRSS")
	convey.Convey("test sys info", t, func() {
		statistic := werss.NewDefaultStatistic()
		statistic.Incr(werss.FeedRoute.GetTypeName())
		a := NewAPI("api/v1/", identity, statistic, nil)
		convey.So(a.Base, convey.ShouldEqual, "/api/v1")

		rec, rsp := doAPIRequest(a.G, http.MethodGet, "/api/v1/sys/info")
		convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
		convey.So(rsp.Code, convey.ShouldEqual, SUCCESS)
		convey.So(rsp.APIVersion, convey.ShouldEqual, werss.Version)
		info := &sysInfoResp{}
		convey.So(json.Unmarshal(rsp.Data, info), convey.ShouldBeNil)
		convey.So(info.AppName, convey.ShouldEqual, "MyRSS")
		convey.So(info.Version, convey.ShouldEqual, "9.9.9")
		convey.So(info.ProcessId, convey.ShouldEqual, werss.ProcessId)
		convey.So(info.Dispatch["feed"], convey.ShouldEqual, 1)
	})
	convey.Convey("test health check", t, func() {
		a := NewAPI("/api/v1", identity, werss.NewDefaultStatistic(), func(ctx context.Context) error {
			_, ok := ctx.Deadline()
			if !ok {
				return errors.New("no deadline")
			}
			return nil
		})
		rec, rsp := doAPIRequest(a.G, http.MethodGet, "/api/v1/sys/health")
		convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
		convey.So(rsp.Code, convey.ShouldEqual, APP_HEALTH_OK)
	})
	convey.Convey("test health check failure", t, func() {
		a := NewAPI("/api/v1", identity, werss.NewDefaultStatistic(), func(ctx context.Context) error {
			return errors.New("connection refused")
		})
		rec, rsp := doAPIRequest(a.G, http.MethodGet, "/api/v1/sys/health")
		convey.So(rec.Code, convey.ShouldEqual, http.StatusServiceUnavailable)
		convey.So(rsp.Code, convey.ShouldEqual, REDIS_CONNECT_ERROR)
		convey.So(rsp.Message, convey.ShouldEqual, "redis connect error")
	})
	convey.Convey("test unmatched api path", t, func() {
		a := NewAPI("/api/v1", identity, werss.NewDefaultStatistic(), nil)
		rec, rsp := doAPIRequest(a.G, http.MethodGet, "/api/v1/articles")
		convey.So(rec.Code, convey.ShouldEqual, http.StatusNotFound)
		convey.So(rsp.Code, convey.ShouldEqual, NOT_FOUND)

		rec, rsp = doAPIRequest(a.G, http.MethodPost, "/api/v1/sys/info")
		convey.So(rec.Code, convey.ShouldEqual, http.StatusMethodNotAllowed)
		convey.So(rsp.Code, convey.ShouldEqual, METHOD_NOT_ALLOWED)
	})
	convey.Convey("test business group", t, func() {
		a := NewAPI("/api/v1", identity, werss.NewDefaultStatistic(), nil)
		a.Group("/mps").GET("", func(ctx *gin.Context) {
			appG := Gin{Ctx: ctx}
			appG.Response(http.StatusOK, SUCCESS, []string{})
		})
		rec, rsp := doAPIRequest(a.G, http.MethodGet, "/api/v1/mps")
		convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
		convey.So(rsp.Message, convey.ShouldEqual, "ok")
	})
}

func TestGetMsg(t *testing.T) {
	convey.Convey("test unknown code", t, func() {
		convey.So(GetMsg(FEED_NOT_FOUND), convey.ShouldEqual, "feed not found")
		convey.So(GetMsg(-1), convey.ShouldEqual, MsgFlags[ERROR])
	})
}
