/**
 * Copyright (c) 2023 wetrycode
 *
 * This software is released under the MIT License.
 * https://opensource.org/licenses/MIT
 */


package api

const (
	SUCCESS            = 200
	ERROR              = 500
	INVALID_PARAMS     = 400
	NOT_FOUND          = 404
	METHOD_NOT_ALLOWED = 405

	APP_HEALTH_OK       = 1000
	REDIS_CONNECT_ERROR = 1002
	FEED_NOT_FOUND      = 1004
)

var MsgFlags = map[int]string{
	SUCCESS:             "ok",
	ERROR:               "fail",
	INVALID_PARAMS:      "bad request",
	NOT_FOUND:           "resource not found",
	METHOD_NOT_ALLOWED:  "method not allowed",
	APP_HEALTH_OK:       "healthy",
	REDIS_CONNECT_ERROR: "redis connect error",
	FEED_NOT_FOUND:      "feed not found",
}

// GetMsg get error information based on Code
func GetMsg(code int) string {
	msg, ok := MsgFlags[code]
	if ok {
		return msg
	}

	return MsgFlags[ERROR]
}
