/**
 * Copyright (c) 2023 wetrycode
 *
 * This software is released under the MIT License.
 * https://opensource.org/licenses/MIT
 */


package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Gin struct {
	Ctx *gin.Context
}

// SetUp 构造路由组使用的gin引擎
// 未匹配的路径统一返回404信封，避免路由组内的错误路径落到SPA
func SetUp() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	engine.NoRoute(func(ctx *gin.Context) {
		appG := Gin{Ctx: ctx}
		appG.Response(http.StatusNotFound, NOT_FOUND, nil)
	})
	engine.NoMethod(func(ctx *gin.Context) {
		appG := Gin{Ctx: ctx}
		appG.Response(http.StatusMethodNotAllowed, METHOD_NOT_ALLOWED, nil)
	})
	return engine
}
