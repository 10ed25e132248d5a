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

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/wetrycode/werss"
	"github.com/wetrycode/werss/api"
	"github.com/wetrycode/werss/feeds"
	"github.com/wetrycode/werss/metric"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfgFile != "" {
			if err := werss.Config.LoadFile(cfgFile); err != nil {
				return err
			}
		}
		settings, err := werss.Config.AppSettings()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rdb, err := werss.NewRdbClient(ctx, settings.Redis)
		if err != nil {
			logger.Errorf("connect redis %s error:%s", settings.Redis.Addr, err.Error())
			return err
		}
		defer rdb.Close()

		server := NewServer(settings, afero.NewOsFs(), feeds.NewRedisFeedStore(rdb))
		if settings.Metric.Influxdb.URL != "" {
			client, writer := metric.NewInfluxdb(settings.Metric.Influxdb)
			defer client.Close()
			collector := metric.NewRequestMetricCollector(writer, server.GetStatistic(), server.GetIdentity(), settings.Metric.Measurement, settings.Metric.Interval)
			go collector.Start(ctx)
		}
		return server.Serve(ctx)
	},
}

// feedStore 订阅存储同时提供健康检查
type feedStore interface {
	feeds.FeedStore
	Ping(ctx context.Context) error
}

// NewServer 装配路由表与服务
// 注册顺序即优先级: api -> feed -> assets -> static/res -> static -> files -> 回落
func NewServer(settings *werss.AppSettings, fs afero.Fs, store feedStore) *werss.Server {
	identity := werss.NewIdentity(werss.Version, settings.AppName)
	statistic := werss.NewDefaultStatistic()

	table := werss.NewRouteTable(werss.RouteTableWithStatistic(statistic))

	apiGroup := api.NewAPI(settings.API.Base, identity, statistic, store.Ping)
	table.MountAPI(apiGroup.Base, apiGroup.G)

	feedGroup := feeds.NewFeedAPI(store, identity, settings.Feed.PageSize, werss.NewDefaultLimiter(settings.Feed.Rate))
	table.MountFeed("/feed", feedGroup.G)
	table.MountFeed("/rss", feedGroup.G)

	table.MountStatic("/assets", werss.NewStaticHandler("/assets", fs, settings.Static.Assets))
	// 头像等资源缓存在上传目录下，需先于 /static 注册
	table.MountStatic("/static/res", werss.NewStaticHandler("/static/res", fs, settings.Static.Files))
	table.MountStatic("/static", werss.NewStaticHandler("/static", fs, settings.Static.Dir))
	table.MountStatic("/files", werss.NewStaticHandler("/files", fs, settings.Static.Files))

	table.SetFallback(werss.NewFallback(fs, settings.Static.Index, settings.Static.Dir))

	return werss.NewServer(settings, table, werss.ServerWithStatistic(statistic))
}
