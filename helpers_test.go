package werss

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
)

const spaShell = "<!doctype html><html><body><div id=\"app\"></div></body></html>"

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestSettings() *AppSettings {
	settings, err := NewConfiguration().AppSettings()
	if err != nil {
		panic(err)
	}
	return settings
}

// newTestFs 内存文件系统，包含SPA入口与静态资源
func newTestFs(withIndex bool) afero.Fs {
	fs := afero.NewMemMapFs()
	if withIndex {
		_ = afero.WriteFile(fs, "static/index.html", []byte(spaShell), 0o644)
	}
	_ = afero.WriteFile(fs, "static/assets/app.js", []byte("console.log('app')"), 0o644)
	_ = afero.WriteFile(fs, "static/feed.xml", []byte("<urlset/>"), 0o644)
	return fs
}

// newTestTable 模拟真实的挂载顺序
func newTestTable(fs afero.Fs, statistic StatisticInterface) *RouteTable {
	table := NewRouteTable(RouteTableWithStatistic(statistic))

	apiEngine := gin.New()
	apiEngine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "pong"})
	})
	apiEngine.GET("/api/v1/boom", func(c *gin.Context) {
		panic("boom")
	})
	table.MountAPI("/api/v1", apiEngine)

	feedEngine := gin.New()
	feedHandler := func(c *gin.Context) {
		c.Header("ETag", `"abc"`)
		c.Header("Last-Modified", "Wed, 21 Oct 2015 07:28:00 GMT")
		c.Header("Cache-Control", "public, max-age=3600")
		c.Data(http.StatusOK, "application/xml", []byte("<rss version=\"2.0\"></rss>"))
	}
	feedEngine.GET("/feed/:file", feedHandler)
	feedEngine.GET("/rss/:file", feedHandler)
	table.MountFeed("/feed", feedEngine)
	table.MountFeed("/rss", feedEngine)

	table.MountStatic("/assets", NewStaticHandler("/assets", fs, "static/assets"))
	table.MountStatic("/static", NewStaticHandler("/static", fs, "static"))
	table.SetFallback(NewFallback(fs, "static/index.html", "static"))
	return table
}

func newTestServer(fs afero.Fs) *Server {
	statistic := NewDefaultStatistic()
	return NewServer(newTestSettings(), newTestTable(fs, statistic), ServerWithStatistic(statistic))
}

func doRequest(h http.Handler, method string, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
