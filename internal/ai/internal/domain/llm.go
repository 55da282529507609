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

package domain

// LLMRequest 一次大模型调用请求
type LLMRequest struct {
	// 发起调用的用户，用于审计
	Uid int64
	// 业务方标识，例如 question_generate、interview_narrative
	Biz string
	// 拼装好的完整 Prompt
	Prompt string
}

// LLMResponse 大模型调用结果
type LLMResponse struct {
	// 花费的 token
	Tokens int64
	// 模型的回答
	Answer string
}
