package werss

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/smartystreets/goconvey/convey"
)

type countingStage struct {
	calls int
}

func (s *countingStage) Apply(_ string, header http.Header) {
	s.calls++
	header.Set("X-Stage-Calls", "1")
}
func (s *countingStage) GetName() string  { return "counting" }
func (s *countingStage) GetPriority() int { return 0 }

func newPipelineEngine(stages Stages, register func(g *gin.Engine)) *gin.Engine {
	g := gin.New()
	g.Use(Pipeline(stages), Recovery())
	register(g)
	return g
}

func TestPipelineMiddleware(t *testing.T) {
	stages := NewPipelineStages(NewIdentity("9.9.9", "WeRSS"))
	convey.Convey("test feed response headers are rewritten after the handler", t, func() {
		g := newPipelineEngine(stages, func(g *gin.Engine) {
			g.GET("/feed/:id", func(c *gin.Context) {
				c.Header("ETag", `"abc"`)
				c.Header(HeaderVersion, "handler-version")
				c.String(http.StatusOK, "<rss/>")
			})
		})
		rec := doRequest(g, http.MethodGet, "/feed/acct123")
		header := rec.Result().Header
		convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
		convey.So(header.Get("Content-Type"), convey.ShouldEqual, FeedContentType)
		convey.So(header.Values("ETag"), convey.ShouldBeEmpty)
		convey.So(header.Get(HeaderVersion), convey.ShouldEqual, "9.9.9")
		convey.So(rec.Body.String(), convey.ShouldEqual, "<rss/>")
	})
	convey.Convey("test stages apply when the handler writes no body", t, func() {
		g := newPipelineEngine(stages, func(g *gin.Engine) {
			g.GET("/feed/:id", func(c *gin.Context) {
				c.Header("Last-Modified", "Wed, 21 Oct 2015 07:28:00 GMT")
				c.Status(http.StatusNoContent)
			})
		})
		rec := doRequest(g, http.MethodGet, "/feed/empty")
		header := rec.Result().Header
		convey.So(rec.Code, convey.ShouldEqual, http.StatusNoContent)
		convey.So(header.Get("Cache-Control"), convey.ShouldEqual, FeedCacheControl)
		convey.So(header.Values("Last-Modified"), convey.ShouldBeEmpty)
		convey.So(header.Get(HeaderPoweredBy), convey.ShouldEqual, PoweredBy)
	})
	convey.Convey("test recovered panics still pass through the stages", t, func() {
		g := newPipelineEngine(stages, func(g *gin.Engine) {
			g.GET("/rss/:id", func(c *gin.Context) {
				panic("render failed")
			})
		})
		rec := doRequest(g, http.MethodGet, "/rss/broken")
		header := rec.Result().Header
		convey.So(rec.Code, convey.ShouldEqual, http.StatusInternalServerError)
		convey.So(header.Get(HeaderVersion), convey.ShouldEqual, "9.9.9")
		convey.So(header.Get("Content-Type"), convey.ShouldEqual, FeedContentType)
	})
	convey.Convey("test stages run once per request", t, func() {
		counter := &countingStage{}
		g := newPipelineEngine(Stages{counter}, func(g *gin.Engine) {
			g.GET("/chunks", func(c *gin.Context) {
				_, _ = c.Writer.WriteString("a")
				_, _ = c.Writer.Write([]byte("b"))
				c.Writer.Flush()
				_, _ = c.Writer.WriteString("c")
			})
		})
		rec := doRequest(g, http.MethodGet, "/chunks")
		convey.So(counter.calls, convey.ShouldEqual, 1)
		convey.So(rec.Body.String(), convey.ShouldEqual, "abc")
		convey.So(rec.Result().Header.Get("X-Stage-Calls"), convey.ShouldEqual, "1")
	})
	convey.Convey("test non feed responses keep their cache headers", t, func() {
		g := newPipelineEngine(stages, func(g *gin.Engine) {
			g.GET("/assets/app.js", func(c *gin.Context) {
				c.Header("ETag", `"v1"`)
				c.Header("Cache-Control", "public, max-age=31536000")
				c.Data(http.StatusOK, "application/javascript", []byte("1"))
			})
		})
		rec := doRequest(g, http.MethodGet, "/assets/app.js")
		header := rec.Result().Header
		convey.So(header.Get("ETag"), convey.ShouldEqual, `"v1"`)
		convey.So(header.Get("Cache-Control"), convey.ShouldEqual, "public, max-age=31536000")
		convey.So(header.Get("Content-Type"), convey.ShouldEqual, "application/javascript")
		convey.So(header.Values("Pragma"), convey.ShouldBeEmpty)
		convey.So(header.Get(HeaderVersion), convey.ShouldEqual, "9.9.9")
	})
}
