package werss

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smartystreets/goconvey/convey"
)

type rejectLimiter struct{}

func (r *rejectLimiter) CheckAndWaitLimiterPass(_ context.Context) error {
	return errors.New("too many requests")
}

func TestDefaultLimit(t *testing.T) {
	limit := NewDefaultLimiter(16)
	start := time.Now()
	wg := &sync.WaitGroup{}
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := limit.CheckAndWaitLimiterPass(context.Background())
			if err != nil {
				t.Errorf("CheckAndWaitLimiterPass error %s", err.Error())
			}
		}()
	}
	wg.Wait()
	interval := time.Since(start).Seconds()
	if interval <= 1.5 {
		t.Errorf("DefaultLimiter is not working")
	}
	t.Logf("task interval is %f", interval)
}

func TestUnlimited(t *testing.T) {
	limit := NewDefaultLimiter(0)
	start := time.Now()
	for i := 0; i < 1000; i++ {
		_ = limit.CheckAndWaitLimiterPass(context.Background())
	}
	if time.Since(start) > time.Second {
		t.Errorf("unlimited limiter should not wait")
	}
}

func TestLimiterCancellation(t *testing.T) {
	convey.Convey("test cancelled ctx never takes a slot", t, func() {
		limit := NewDefaultLimiter(1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		convey.So(limit.CheckAndWaitLimiterPass(ctx), convey.ShouldEqual, context.Canceled)
	})
	convey.Convey("test ctx expiring while queued", t, func() {
		limit := NewDefaultLimiter(1)
		convey.So(limit.CheckAndWaitLimiterPass(context.Background()), convey.ShouldBeNil)
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		err := limit.CheckAndWaitLimiterPass(ctx)
		convey.So(errors.Is(err, context.DeadlineExceeded), convey.ShouldBeTrue)
	})
	convey.Convey("test middleware drops disconnected clients", t, func() {
		reached := false
		g := gin.New()
		g.Use(LimitMiddleware(NewDefaultLimiter(100)))
		g.GET("/rss", func(c *gin.Context) {
			reached = true
			c.String(http.StatusOK, "ok")
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		req := httptest.NewRequest(http.MethodGet, "/rss", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		g.ServeHTTP(rec, req)
		convey.So(rec.Code, convey.ShouldEqual, http.StatusRequestTimeout)
		convey.So(reached, convey.ShouldBeFalse)
	})
}

func TestLimitMiddleware(t *testing.T) {
	convey.Convey("test limiter rejection", t, func() {
		g := gin.New()
		g.Use(LimitMiddleware(&rejectLimiter{}))
		g.GET("/rss", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		rec := doRequest(g, http.MethodGet, "/rss")
		convey.So(rec.Code, convey.ShouldEqual, http.StatusTooManyRequests)
	})
	convey.Convey("test limiter pass", t, func() {
		g := gin.New()
		g.Use(LimitMiddleware(NewDefaultLimiter(100)))
		g.GET("/rss", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})
		rec := doRequest(g, http.MethodGet, "/rss")
		convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
	})
}
