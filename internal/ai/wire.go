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

package ai

import (
	"github.com/ecodeclub/aimarket/internal/ai/internal/service/zhipu"
	"github.com/gotomicro/ego/core/econf"
)

// InitLLMService 构造大模型服务。
// zhipu 配置示例: zhipu.apikey / zhipu.model
func InitLLMService() LLMService {
	type Cfg struct {
		APIKey string `yaml:"apikey"`
		Model  string `yaml:"model"`
	}
	var cfg Cfg
	err := econf.UnmarshalKey("zhipu", &cfg)
	if err != nil {
		panic(err)
	}
	svc, err := zhipu.NewLLMService(cfg.APIKey, cfg.Model)
	if err != nil {
		panic(err)
	}
	return svc
}
