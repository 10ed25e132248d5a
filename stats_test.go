package werss

import (
	"sync"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestStatistic(t *testing.T) {
	convey.Convey("test incr metrics", t, func() {
		d := NewDefaultStatistic()
		d.Incr("403")
		d.Incr(FeedRoute.GetTypeName())
		d.Incr("not-a-metric")
		convey.So(d.Get("403"), convey.ShouldEqual, 1)
		convey.So(d.Get("feed"), convey.ShouldEqual, 1)
		convey.So(d.Get("not-a-metric"), convey.ShouldEqual, 0)
		convey.So(d.GetAllStats(), convey.ShouldResemble, map[string]uint64{"403": 1, "feed": 1})
		convey.So(d.GetUptime(), convey.ShouldBeGreaterThanOrEqualTo, 0)
	})
	convey.Convey("test concurrent incr", t, func() {
		d := NewDefaultStatistic()
		wg := &sync.WaitGroup{}
		for i := 0; i < 64; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				d.Incr(RequestStats)
			}()
		}
		wg.Wait()
		convey.So(d.Get(RequestStats), convey.ShouldEqual, 64)
	})
}
