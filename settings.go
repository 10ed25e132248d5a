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

package werss

import (
	"os"
	"sync"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Settings interface {
	// GetValue 获取指定的参数值
	GetValue(key string) (interface{}, error)
}

// Configuration settings.yaml 配置
type Configuration struct {
	*viper.Viper
}

type ServerSettings struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	H2C          bool          `mapstructure:"h2c"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type APISettings struct {
	Base string `mapstructure:"base"`
}

type StaticSettings struct {
	// Dir 静态文件根目录，挂载到 /static
	Dir string `mapstructure:"dir"`
	// Assets 前端构建产物，挂载到 /assets
	Assets string `mapstructure:"assets"`
	// Files 用户上传的文件，挂载到 /files
	Files string `mapstructure:"files"`
	// Index SPA 入口文件
	Index string `mapstructure:"index"`
}

type CORSSettings struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type RedisSettings struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type FeedSettings struct {
	// Rate 每秒处理的订阅请求数，<=0 不限速
	Rate     int `mapstructure:"rate"`
	PageSize int `mapstructure:"page_size"`
}

type InfluxdbSettings struct {
	URL    string `mapstructure:"url"`
	Token  string `mapstructure:"token"`
	Bucket string `mapstructure:"bucket"`
	Org    string `mapstructure:"org"`
}

// MetricSettings 请求统计上报，influxdb.url 为空时不上报
type MetricSettings struct {
	Influxdb    InfluxdbSettings `mapstructure:"influxdb"`
	Measurement string           `mapstructure:"measurement"`
	Interval    time.Duration    `mapstructure:"interval"`
}

// AppSettings 应用配置
type AppSettings struct {
	AppName string         `mapstructure:"app_name"`
	Server  ServerSettings `mapstructure:"server"`
	API     APISettings    `mapstructure:"api"`
	Static  StaticSettings `mapstructure:"static"`
	CORS    CORSSettings   `mapstructure:"cors"`
	Redis   RedisSettings  `mapstructure:"redis"`
	Feed    FeedSettings   `mapstructure:"feed"`
	Metric  MetricSettings `mapstructure:"metric"`
}

var onceConfig sync.Once
var Config *Configuration = nil

func newWeRSSConfig() {
	onceConfig.Do(func() {
		Config = NewConfiguration()
	})
}

// NewConfiguration 构造带默认值的配置
func NewConfiguration() *Configuration {
	c := &Configuration{
		viper.New(),
	}
	c.setDefaults()
	return c
}

func (c *Configuration) setDefaults() {
	c.SetDefault("app_name", DefaultAppName)
	c.SetDefault("server.host", "0.0.0.0")
	c.SetDefault("server.port", 8001)
	c.SetDefault("server.h2c", false)
	c.SetDefault("server.read_timeout", "10s")
	c.SetDefault("server.write_timeout", "30s")
	c.SetDefault("api.base", DefaultAPIBase)
	c.SetDefault("static.dir", DefaultStaticDir)
	c.SetDefault("static.assets", DefaultAssetsDir)
	c.SetDefault("static.files", DefaultFilesDir)
	c.SetDefault("static.index", DefaultSPAIndexFile)
	c.SetDefault("cors.allow_origins", []string{"*"})
	c.SetDefault("redis.addr", "127.0.0.1:6379")
	c.SetDefault("redis.db", 0)
	c.SetDefault("feed.rate", 0)
	c.SetDefault("feed.page_size", 30)
	c.SetDefault("metric.influxdb.url", "")
	c.SetDefault("metric.measurement", "werss")
	c.SetDefault("metric.interval", "10s")
	c.SetDefault("log.level", "info")
}

func (c *Configuration) GetValue(key string) (interface{}, error) {
	value := c.Get(key)
	return value, nil
}

func (c *Configuration) load(dir string) bool {
	c.AddConfigPath(dir)
	c.SetConfigName("settings")
	c.SetConfigType("yaml")
	readErr := c.ReadInConfig()
	return readErr == nil
}

// LoadFile 加载指定的配置文件
func (c *Configuration) LoadFile(file string) error {
	c.SetConfigFile(file)
	return c.ReadInConfig()
}

// AppSettings 解析应用配置
// 时长支持 "10s" 格式，列表支持逗号分隔的字符串
func (c *Configuration) AppSettings() (*AppSettings, error) {
	s := &AppSettings{}
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := c.Unmarshal(s, hook); err != nil {
		return nil, err
	}
	if s.AppName == "" {
		s.AppName = DefaultAppName
	}
	return s, nil
}

func initSettings() {
	newWeRSSConfig()
	wd, _ := os.Getwd()
	Config.load(wd)
}
