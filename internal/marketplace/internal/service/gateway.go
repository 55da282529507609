// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ecodeclub/ekit/retry"
	"github.com/ecodeclub/aimarket/internal/marketplace/internal/domain"
)

// Service 人才市场网关
// 面试模块通过它校验候选人和职位的存在性，并拿到通知所需的联系方式
//
//go:generate mockgen -source=./gateway.go -destination=../../mocks/gateway.mock.go -package=marketplacemocks -typed=true Service
type Service interface {
	// TalentByID 根据 ID 查询候选人档案
	TalentByID(ctx context.Context, id int64) (domain.Talent, error)
	// JobByID 根据 ID 查询职位
	JobByID(ctx context.Context, id int64) (domain.Job, error)
	// CompanyByID 根据 ID 查询企业账号
	CompanyByID(ctx context.Context, id int64) (domain.Company, error)
}

var (
	// ErrNotFound 对端返回 404
	ErrNotFound = errors.New("记录不存在")
	// ErrClientError 客户端错误（4xx），不应重试
	ErrClientError = errors.New("客户端错误")
	// ErrServerError 服务端错误（5xx），应该重试
	ErrServerError = errors.New("服务端错误")
)

// HTTPClient HTTP 客户端接口，便于测试时 mock
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// HTTPGateway 基于 HTTP 的人才市场网关实现
type HTTPGateway struct {
	baseURL     string
	client      HTTPClient
	interval    time.Duration
	maxInterval time.Duration
	maxRetries  int
}

var _ Service = (*HTTPGateway)(nil)

// NewHTTPGateway 创建人才市场网关
// baseURL 例如 "http://marketplace.internal:8080"
func NewHTTPGateway(
	baseURL string,
	client HTTPClient,
	interval time.Duration,
	maxInterval time.Duration,
	maxRetries int,
) *HTTPGateway {
	return &HTTPGateway{
		baseURL:     baseURL,
		client:      client,
		interval:    interval,
		maxInterval: maxInterval,
		maxRetries:  maxRetries,
	}
}

func (g *HTTPGateway) TalentByID(ctx context.Context, id int64) (domain.Talent, error) {
	var res domain.Talent
	err := g.getWithRetry(ctx, fmt.Sprintf("%s/api/talents/%d", g.baseURL, id), &res)
	return res, err
}

func (g *HTTPGateway) JobByID(ctx context.Context, id int64) (domain.Job, error) {
	var res domain.Job
	err := g.getWithRetry(ctx, fmt.Sprintf("%s/api/jobs/%d", g.baseURL, id), &res)
	return res, err
}

func (g *HTTPGateway) CompanyByID(ctx context.Context, id int64) (domain.Company, error) {
	var res domain.Company
	err := g.getWithRetry(ctx, fmt.Sprintf("%s/api/companies/%d", g.baseURL, id), &res)
	return res, err
}

// getWithRetry 对 5xx 和网络错误做指数退避重试，4xx 直接返回
func (g *HTTPGateway) getWithRetry(ctx context.Context, url string, dst any) error {
	retryStrategy, err := retry.NewExponentialBackoffRetryStrategy(
		g.interval,
		g.maxInterval,
		int32(g.maxRetries),
	)
	if err != nil {
		return fmt.Errorf("创建重试策略失败: %w", err)
	}

	var lastErr error
	for {
		if ctx.Err() != nil {
			return fmt.Errorf("context已取消: %w", ctx.Err())
		}

		err := g.getOnce(ctx, url, dst)
		if err == nil {
			return nil
		}
		// 404 和其它客户端错误不重试
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrClientError) {
			return err
		}
		lastErr = err

		next, ok := retryStrategy.Next()
		if !ok {
			return fmt.Errorf("超过最大重试次数，最后一次错误: %w", lastErr)
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("context已取消: %w", ctx.Err())
		case <-time.After(next):
		}
	}
}

func (g *HTTPGateway) getOnce(ctx context.Context, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("创建请求失败: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("请求人才市场失败: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, url)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return fmt.Errorf("%w: 状态码 %d", ErrClientError, resp.StatusCode)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: 状态码 %d", ErrServerError, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("解析响应失败: %w", err)
	}
	return nil
}
