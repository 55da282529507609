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
	"fmt"
	"strings"

	"github.com/ecodeclub/aimarket/internal/ai"
	"github.com/ecodeclub/aimarket/internal/interview/internal/domain"
	"github.com/gotomicro/ego/core/elog"
)

// Narrative 分析报告里的文字性结论
type Narrative struct {
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
	KeyInsights     []string `json:"keyInsights"`
}

// NarrativeGenerator 生成分析报告的文字性结论
// 评分策略只负责数值，文字结论单独可插拔
type NarrativeGenerator interface {
	Generate(ctx context.Context, interview domain.Interview, analysis domain.Analysis) (Narrative, error)
}

// StaticNarrativeGenerator 返回固定的说明文案
// 在真实评估接入之前作为兜底
type StaticNarrativeGenerator struct{}

func NewStaticNarrativeGenerator() *StaticNarrativeGenerator {
	return &StaticNarrativeGenerator{}
}

func (g *StaticNarrativeGenerator) Generate(ctx context.Context,
	interview domain.Interview, analysis domain.Analysis) (Narrative, error) {
	return Narrative{
		Strengths: []string{
			"回答结构清晰，表达流畅",
			"对核心技术概念有扎实的理解",
		},
		Weaknesses: []string{
			"部分回答缺少具体的项目落地细节",
		},
		Recommendations: []string{
			"建议结合实际项目经验补充量化成果",
		},
		KeyInsights: []string{
			"候选人整体表现稳定，可安排下一轮沟通",
		},
	}, nil
}

// LLMNarrativeGenerator 调用大模型生成文字结论
// 调用失败时降级为静态文案，不阻塞面试完成
type LLMNarrativeGenerator struct {
	llm      ai.LLMService
	fallback NarrativeGenerator
	logger   *elog.Component
}

func NewLLMNarrativeGenerator(llm ai.LLMService, fallback NarrativeGenerator) *LLMNarrativeGenerator {
	return &LLMNarrativeGenerator{
		llm:      llm,
		fallback: fallback,
		logger:   elog.DefaultLogger,
	}
}

func (g *LLMNarrativeGenerator) Generate(ctx context.Context,
	interview domain.Interview, analysis domain.Analysis) (Narrative, error) {
	resp, err := g.llm.Invoke(ctx, ai.LLMRequest{
		Uid:    interview.TalentID,
		Biz:    "interview_narrative",
		Prompt: g.prompt(interview, analysis),
	})
	if err != nil {
		g.logger.Warn("调用大模型生成面试评语失败，使用兜底文案",
			elog.String("sn", interview.SN), elog.FieldErr(err))
		return g.fallback.Generate(ctx, interview, analysis)
	}
	var res Narrative
	if err := json.Unmarshal([]byte(resp.Answer), &res); err != nil {
		g.logger.Warn("大模型返回的面试评语无法解析，使用兜底文案",
			elog.String("sn", interview.SN), elog.FieldErr(err))
		return g.fallback.Generate(ctx, interview, analysis)
	}
	return res, nil
}

func (g *LLMNarrativeGenerator) prompt(interview domain.Interview, analysis domain.Analysis) string {
	var sb strings.Builder
	sb.WriteString("你是一名资深技术面试官。下面是一场 AI 监考面试的问答记录，")
	sb.WriteString("请以 JSON 格式输出评语，字段为 strengths、weaknesses、recommendations、keyInsights，均为字符串数组。\n")
	sb.WriteString(fmt.Sprintf("综合得分：%d，平均置信度：%.1f，可疑监考事件数：%d。\n",
		analysis.OverallScore, analysis.AverageConfidence, analysis.SuspiciousEventCount))
	for _, r := range interview.Responses {
		sb.WriteString(fmt.Sprintf("问：%s\n答：%s\n", r.QuestionText, r.ResponseText))
	}
	return sb.String()
}
