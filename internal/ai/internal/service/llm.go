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

	"github.com/ecodeclub/aimarket/internal/ai/internal/domain"
)

// LLMService 是对接生成式内容服务的统一入口。
// 业务方只关心 Prompt 进、回答出，不感知底层模型。
type LLMService interface {
	Invoke(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error)
}
