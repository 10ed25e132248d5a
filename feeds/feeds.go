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

package feeds

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/wetrycode/werss"
	"github.com/wetrycode/werss/api"
)

var feedLog *logrus.Entry = werss.GetLogger("feeds")

// AllFeedID 聚合全部公众号文章的订阅id
const AllFeedID = "all"

// FeedAPI RSS 路由组
type FeedAPI struct {
	G        *gin.Engine
	store    FeedStore
	identity werss.Identity
	pageSize int
}

// splitFeedFile 拆分 acct123.xml 形式的路径参数
func splitFeedFile(file string) string {
	for _, ext := range []string{".xml", ".rss", ".atom"} {
		if strings.HasSuffix(file, ext) {
			return strings.TrimSuffix(file, ext)
		}
	}
	return file
}

func (f *FeedAPI) limit(ctx *gin.Context) int {
	limit, err := strconv.Atoi(ctx.Query("limit"))
	if err != nil || limit <= 0 || limit > f.pageSize {
		return f.pageSize
	}
	return limit
}

func (f *FeedAPI) all(ctx *gin.Context) {
	f.render(ctx, AllFeedID)
}

func (f *FeedAPI) feed(ctx *gin.Context) {
	f.render(ctx, splitFeedFile(ctx.Param("file")))
}

func (f *FeedAPI) render(ctx *gin.Context, id string) {
	appG := api.Gin{Ctx: ctx}
	channel := Channel{
		Title:       f.identity.GetAppName(),
		Link:        werss.SourceURL,
		Description: f.identity.GetAppName() + " 全部公众号文章",
		Generator:   f.identity.GetAppName() + " " + f.identity.GetVersion(),
	}
	accountID := ""
	if id != AllFeedID {
		account, err := f.store.GetAccount(ctx.Request.Context(), id)
		if errors.Is(err, ErrFeedNotFound) {
			appG.Response(http.StatusNotFound, api.FEED_NOT_FOUND, nil)
			return
		}
		if err != nil {
			feedLog.Errorf("get account %s error:%s", id, err.Error())
			appG.Response(http.StatusInternalServerError, api.ERROR, nil)
			return
		}
		accountID = account.ID
		channel.Title = account.Name
		channel.Description = account.Description
		channel.Image = account.Avatar
	}
	articles, err := f.store.ListArticles(ctx.Request.Context(), accountID, f.limit(ctx))
	if err != nil {
		feedLog.Errorf("list articles of %s error:%s", id, err.Error())
		appG.Response(http.StatusInternalServerError, api.ERROR, nil)
		return
	}
	body, err := Render(channel, articles)
	if err != nil {
		feedLog.Errorf("render feed %s error:%s", id, err.Error())
		appG.Response(http.StatusInternalServerError, api.ERROR, nil)
		return
	}
	ctx.Data(http.StatusOK, werss.FeedContentType, body)
}

// NewFeedAPI 构造RSS路由组
// /feed/:file 与 /rss/:file 中的 file 可以带 .xml/.rss/.atom 后缀
func NewFeedAPI(store FeedStore, identity werss.Identity, pageSize int, limiter werss.LimitInterface) *FeedAPI {
	if pageSize <= 0 {
		pageSize = 30
	}
	f := &FeedAPI{
		store:    store,
		identity: identity,
		pageSize: pageSize,
	}
	g := api.SetUp()
	if limiter != nil {
		g.Use(werss.LimitMiddleware(limiter))
	}
	g.GET("/feed", f.all)
	g.GET("/feed/:file", f.feed)
	g.GET("/rss", f.all)
	g.GET("/rss/:file", f.feed)
	f.G = g
	return f
}
