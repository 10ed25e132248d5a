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

// Identity 进程级别的身份信息
// 启动时构造一次，之后只读，可被所有请求并发访问
type Identity struct {
	version string
	appName string
}

// NewIdentity 构造进程身份，appName为空时使用默认名称
func NewIdentity(version string, appName string) Identity {
	if appName == "" {
		appName = DefaultAppName
	}
	return Identity{
		version: version,
		appName: appName,
	}
}

// GetVersion 版本号
func (i Identity) GetVersion() string {
	return i.version
}

// GetAppName 应用名，作为 Server 响应头
func (i Identity) GetAppName() string {
	return i.appName
}
