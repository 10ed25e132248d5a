/**
 * Copyright (c) 2023 wetrycode
 *
 * This software is released under the MIT License.
 * https://opensource.org/licenses/MIT
 */


package api

import "github.com/wetrycode/werss"

type Response struct {
	APIVersion string      `json:"api"`
	Code       int         `json:"code"`
	Message    string      `json:"msg"`
	Data       interface{} `json:"data"`
}

func (g *Gin) Response(httpCode, errCode int, data interface{}) {
	g.Ctx.AbortWithStatusJSON(httpCode, Response{
		APIVersion: werss.Version,
		Code:       errCode,
		Message:    GetMsg(errCode),
		Data:       data,
	})
}
