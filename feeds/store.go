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
	"context"
	"errors"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrFeedNotFound 公众号不存在
var ErrFeedNotFound error = errors.New("feed not found")

const (
	accountKeyTemplate  = "werss:mp:%s"
	articlesKeyTemplate = "werss:mp:%s:articles"
	articleKeyTemplate  = "werss:article:%s"
	allArticlesKey      = "werss:articles"
)

// Account 公众号
type Account struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
}

// Article 公众号文章，Content 为文章HTML
type Article struct {
	ID          string    `json:"id"`
	AccountID   string    `json:"mp_id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Author      string    `json:"author"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"publish_time"`
}

// FeedStore 订阅内容存储
// 写入由采集任务完成，订阅路由只读取
type FeedStore interface {
	GetAccount(ctx context.Context, id string) (*Account, error)
	// ListArticles 按发布时间倒序获取文章，accountID 为空时获取全部
	ListArticles(ctx context.Context, accountID string, limit int) ([]*Article, error)
	SaveAccount(ctx context.Context, account *Account) error
	SaveArticle(ctx context.Context, article *Article) error
}

// RedisFeedStore 基于redis的订阅内容存储
// 文章正文保存在 string 中，发布时间索引保存在 zset 中
type RedisFeedStore struct {
	rdb redis.UniversalClient
}

func NewRedisFeedStore(rdb redis.UniversalClient) *RedisFeedStore {
	return &RedisFeedStore{rdb: rdb}
}

func (s *RedisFeedStore) GetAccount(ctx context.Context, id string) (*Account, error) {
	data, err := s.rdb.Get(ctx, fmt.Sprintf(accountKeyTemplate, id)).Bytes()
	if err == redis.Nil {
		return nil, ErrFeedNotFound
	}
	if err != nil {
		return nil, err
	}
	account := &Account{}
	if err := json.Unmarshal(data, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *RedisFeedStore) SaveAccount(ctx context.Context, account *Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, fmt.Sprintf(accountKeyTemplate, account.ID), data, 0).Err()
}

func (s *RedisFeedStore) SaveArticle(ctx context.Context, article *Article) error {
	data, err := json.Marshal(article)
	if err != nil {
		return err
	}
	score := float64(article.PublishedAt.Unix())
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, fmt.Sprintf(articleKeyTemplate, article.ID), data, 0)
		pipe.ZAdd(ctx, fmt.Sprintf(articlesKeyTemplate, article.AccountID), redis.Z{Score: score, Member: article.ID})
		pipe.ZAdd(ctx, allArticlesKey, redis.Z{Score: score, Member: article.ID})
		return nil
	})
	return err
}

func (s *RedisFeedStore) ListArticles(ctx context.Context, accountID string, limit int) ([]*Article, error) {
	if limit <= 0 {
		return []*Article{}, nil
	}
	index := allArticlesKey
	if accountID != "" {
		index = fmt.Sprintf(articlesKeyTemplate, accountID)
	}
	ids, err := s.rdb.ZRevRange(ctx, index, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []*Article{}, nil
	}
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, fmt.Sprintf(articleKeyTemplate, id))
	}
	values, err := s.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	articles := make([]*Article, 0, len(values))
	for _, value := range values {
		raw, ok := value.(string)
		if !ok {
			// 索引存在但正文已被删除
			continue
		}
		article := &Article{}
		if err := json.UnmarshalFromString(raw, article); err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, nil
}

// Ping 存储健康检查
func (s *RedisFeedStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
