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

package job

import (
	"context"
	"fmt"
	"time"

	"github.com/ecodeclub/aimarket/internal/interview/internal/service"
	"github.com/gotomicro/ego/task/ecron"
)

var _ ecron.NamedJob = (*ExpireInterviewsJob)(nil)

// ExpireInterviewsJob 定时把超过有效期仍未开始的面试置为过期
type ExpireInterviewsJob struct {
	svc     service.InterviewService
	limit   int
	timeout time.Duration
}

func NewExpireInterviewsJob(svc service.InterviewService, limit int, timeout time.Duration) *ExpireInterviewsJob {
	return &ExpireInterviewsJob{svc: svc, limit: limit, timeout: timeout}
}

func (j *ExpireInterviewsJob) Name() string {
	return "ExpireInterviewsJob"
}

func (j *ExpireInterviewsJob) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithTimeout(ctx, j.timeout)
	defer cancelFunc()
	now := time.Now()

	for {
		cnt, err := j.svc.ExpireOverdue(ctx, now, j.limit)
		if err != nil {
			return fmt.Errorf("处理过期面试失败: %w", err)
		}
		if cnt < int64(j.limit) {
			break
		}
	}
	return nil
}
