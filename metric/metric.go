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

package metric

import (
	"context"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/sirupsen/logrus"
	"github.com/wetrycode/werss"
)

var metricLog *logrus.Entry = werss.GetLogger("metric")

const defaultInterval = 10 * time.Second

// PointWriter influxdb 写接口，api.WriteAPIBlocking 满足该接口
type PointWriter interface {
	WritePoint(ctx context.Context, point ...*write.Point) error
}

// RequestMetricCollector 定时将请求统计写入influxdb
type RequestMetricCollector struct {
	writer      PointWriter
	statistic   werss.StatisticInterface
	measurement string
	interval    time.Duration
	tags        map[string]string
}

// NewInfluxdb 构建influxdb 客户端
// 调用方负责 Close
func NewInfluxdb(settings werss.InfluxdbSettings) (influxdb2.Client, PointWriter) {
	client := influxdb2.NewClientWithOptions(settings.URL, settings.Token, influxdb2.DefaultOptions().SetUseGZip(true).SetMaxRetries(3))
	return client, client.WriteAPIBlocking(settings.Org, settings.Bucket)
}

// NewRequestMetricCollector 构建采集器
func NewRequestMetricCollector(writer PointWriter, statistic werss.StatisticInterface, identity werss.Identity, measurement string, interval time.Duration) *RequestMetricCollector {
	if measurement == "" {
		measurement = "werss"
	}
	if interval <= 0 {
		interval = defaultInterval
	}
	return &RequestMetricCollector{
		writer:      writer,
		statistic:   statistic,
		measurement: measurement,
		interval:    interval,
		tags: map[string]string{
			"app":     identity.GetAppName(),
			"version": identity.GetVersion(),
			"process": werss.ProcessId,
		},
	}
}

// Collect 采集一次当前的统计数据，所有指标写在同一个point中
func (c *RequestMetricCollector) Collect(ctx context.Context) error {
	p := influxdb2.NewPointWithMeasurement(c.measurement).SetTime(time.Now())
	for key, value := range c.tags {
		p.AddTag(key, value)
	}
	for key, value := range c.statistic.GetAllStats() {
		p.AddField(key, value)
	}
	p.AddField("uptime", c.statistic.GetUptime())
	return c.writer.WritePoint(ctx, p)
}

// Start 启动采集器，ctx 结束后退出，退出前再采集一次
func (c *RequestMetricCollector) Start(ctx context.Context) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := c.Collect(ctx); err != nil {
				metricLog.Errorf("write metric error:%s", err.Error())
			}
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.Background(), c.interval)
			if err := c.Collect(flushCtx); err != nil {
				metricLog.Errorf("flush metric error:%s", err.Error())
			}
			cancel()
			return
		}
	}
}
