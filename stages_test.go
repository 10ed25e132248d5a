package werss

import (
	"net/http"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestPipelineOrder(t *testing.T) {
	convey.Convey("test stages run in pipeline order", t, func() {
		stages := NewPipelineStages(NewIdentity("1.0.0", "demo"))
		convey.So(stages.Names(), convey.ShouldResemble, PipelineOrder)
		convey.So(PipelineOrder, convey.ShouldResemble, []string{HeaderInjectionStageName, CacheSuppressionStageName})
	})
}

func TestHeaderInjectionStage(t *testing.T) {
	convey.Convey("test identity headers overwrite existing values", t, func() {
		header := http.Header{}
		header.Set(HeaderVersion, "bogus")
		header.Set(HeaderServer, "nginx")
		NewHeaderInjectionStage(NewIdentity("1.2.3", "MyRSS")).Apply("/anything", header)
		convey.So(header.Get(HeaderVersion), convey.ShouldEqual, "1.2.3")
		convey.So(header.Get(HeaderPoweredBy), convey.ShouldEqual, PoweredBy)
		convey.So(header.Get(HeaderGithub), convey.ShouldEqual, SourceURL)
		convey.So(header.Get(HeaderServer), convey.ShouldEqual, "MyRSS")
		convey.So(header.Values(HeaderServer), convey.ShouldHaveLength, 1)
	})
	convey.Convey("test server header falls back to default app name", t, func() {
		header := http.Header{}
		NewHeaderInjectionStage(NewIdentity("1.2.3", "")).Apply("/", header)
		convey.So(header.Get(HeaderServer), convey.ShouldEqual, DefaultAppName)
	})
}

func TestCacheSuppressionStage(t *testing.T) {
	stage := NewCacheSuppressionStage()
	convey.Convey("test feed path headers", t, func() {
		header := http.Header{}
		header.Set("Content-Type", "text/plain")
		header.Set("ETag", `"abc"`)
		header.Set("Last-Modified", "Wed, 21 Oct 2015 07:28:00 GMT")
		stage.Apply("/feed/acct123", header)
		convey.So(header.Get("Content-Type"), convey.ShouldEqual, FeedContentType)
		convey.So(header.Get("Cache-Control"), convey.ShouldEqual, FeedCacheControl)
		convey.So(header.Get("Pragma"), convey.ShouldEqual, "no-cache")
		convey.So(header.Get("Expires"), convey.ShouldEqual, "0")
		convey.So(header.Values("ETag"), convey.ShouldBeEmpty)
		convey.So(header.Values("Last-Modified"), convey.ShouldBeEmpty)
	})
	convey.Convey("test removing absent validators is a no-op", t, func() {
		header := http.Header{}
		convey.So(func() { stage.Apply("/rss/all.xml", header) }, convey.ShouldNotPanic)
		convey.So(func() { stage.Apply("/rss/all.xml", header) }, convey.ShouldNotPanic)
		convey.So(header.Get("Content-Type"), convey.ShouldEqual, FeedContentType)
	})
	convey.Convey("test feed extensions under reserved prefixes", t, func() {
		for _, path := range []string{"/static/feed.xml", "/api/v1/export/all.rss", "/assets/x.atom"} {
			header := http.Header{}
			header.Set("Content-Type", "application/xml")
			header.Set("ETag", `"abc"`)
			stage.Apply(path, header)
			convey.So(header.Get("Content-Type"), convey.ShouldEqual, FeedContentType)
			convey.So(header.Get("Cache-Control"), convey.ShouldEqual, FeedCacheControl)
			convey.So(header.Values("ETag"), convey.ShouldBeEmpty)
		}
	})
	convey.Convey("test non feed paths are untouched", t, func() {
		for _, path := range []string{"/dashboard", "/api/v1/articles", "/assets/app.js", "/favicon.ico", "/", "/a.xml/"} {
			header := http.Header{}
			header.Set("Content-Type", "text/html")
			header.Set("ETag", `"v1"`)
			header.Set("Cache-Control", "public, max-age=60")
			before := header.Clone()
			stage.Apply(path, header)
			convey.So(header, convey.ShouldResemble, before)
		}
	})
}
