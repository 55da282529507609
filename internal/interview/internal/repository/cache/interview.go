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

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecodeclub/aimarket/internal/interview/internal/domain"
	"github.com/ecodeclub/ecache"
	"github.com/pkg/errors"
)

var ErrInterviewNotCached = errors.New("面试记录不在缓存中")

// 详情读取是高频操作，但任何一次状态变更都会使缓存失效，过期时间不必太长
const expiration = 10 * time.Minute

type InterviewCache interface {
	Set(ctx context.Context, i domain.Interview) error
	Get(ctx context.Context, sn string) (domain.Interview, error)
	Del(ctx context.Context, sn string) error
}

type InterviewECache struct {
	ec ecache.Cache
}

func NewInterviewECache(ec ecache.Cache) InterviewCache {
	return &InterviewECache{
		ec: &ecache.NamespaceCache{
			Namespace: "interview:",
			C:         ec,
		},
	}
}

func (c *InterviewECache) Set(ctx context.Context, i domain.Interview) error {
	data, err := json.Marshal(i)
	if err != nil {
		return errors.Wrap(err, "序列化面试记录失败")
	}
	return c.ec.Set(ctx, c.key(i.SN), string(data), expiration)
}

func (c *InterviewECache) Get(ctx context.Context, sn string) (domain.Interview, error) {
	val := c.ec.Get(ctx, c.key(sn))
	if val.KeyNotFound() {
		return domain.Interview{}, ErrInterviewNotCached
	}
	if val.Err != nil {
		return domain.Interview{}, errors.Wrap(val.Err, "查询缓存出错")
	}
	var i domain.Interview
	err := json.Unmarshal([]byte(val.Val.(string)), &i)
	if err != nil {
		return domain.Interview{}, errors.Wrap(err, "反序列化面试记录失败")
	}
	return i, nil
}

func (c *InterviewECache) Del(ctx context.Context, sn string) error {
	_, err := c.ec.Delete(ctx, c.key(sn))
	return err
}

func (c *InterviewECache) key(sn string) string {
	return fmt.Sprintf("detail:%s", sn)
}
