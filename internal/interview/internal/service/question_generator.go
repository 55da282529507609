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
	"fmt"

	"github.com/ecodeclub/aimarket/internal/ai"
	"github.com/ecodeclub/aimarket/internal/interview/internal/domain"
	"github.com/gotomicro/ego/core/elog"
)

// 技能类问题最多出 3 道
const maxSkillQuestions = 3

// QuestionGenerator 根据职位信息生成面试问题
// 问题列表在创建面试时生成，之后不可变
type QuestionGenerator interface {
	Generate(ctx context.Context, job domain.JobProfile) ([]domain.Question, error)
}

// TemplateQuestionGenerator 模板化出题
// 结构固定：1 道开场介绍、1 道项目挑战、至多 3 道技能专项、1 道情景题、1 道职业规划题
type TemplateQuestionGenerator struct{}

func NewTemplateQuestionGenerator() *TemplateQuestionGenerator {
	return &TemplateQuestionGenerator{}
}

func (g *TemplateQuestionGenerator) Generate(ctx context.Context,
	job domain.JobProfile) ([]domain.Question, error) {
	questions := make([]domain.Question, 0, 4+maxSkillQuestions)
	questions = append(questions, domain.Question{
		Text:           fmt.Sprintf("请先做一个自我介绍，并讲讲你为什么对 %s 这个职位感兴趣。", job.Title),
		Category:       domain.CategoryGeneral,
		ExpectedTopics: []string{"背景介绍", "求职动机"},
	})
	questions = append(questions, domain.Question{
		Text:           "请描述一个你做过的最有挑战性的项目，重点说明你遇到的技术难点和解决思路。",
		Category:       domain.CategoryTechnical,
		ExpectedTopics: []string{"项目经验", "问题定位", "技术选型"},
	})
	skills := job.Skills
	if len(skills) > maxSkillQuestions {
		skills = skills[:maxSkillQuestions]
	}
	for _, skill := range skills {
		questions = append(questions, domain.Question{
			Text:           fmt.Sprintf("请谈谈你在 %s 方面的实践经验，并举一个具体的例子。", skill),
			Category:       domain.CategoryTechnical,
			ExpectedTopics: []string{skill, "实践经验"},
		})
	}
	questions = append(questions, domain.Question{
		Text:           "如果你负责的线上服务突然出现大面积故障，而你手头只有有限的信息，你会如何处理？",
		Category:       domain.CategorySituational,
		ExpectedTopics: []string{"应急处理", "沟通协作", "优先级判断"},
	})
	questions = append(questions, domain.Question{
		Text:           "你对未来三到五年的职业发展有什么规划？这个职位在其中扮演什么角色？",
		Category:       domain.CategoryBehavioral,
		ExpectedTopics: []string{"职业规划", "自我认知"},
	})
	for idx := range questions {
		questions[idx].Order = idx
	}
	return questions, nil
}

// LLMQuestionGenerator 在模板结构的基础上用大模型润色问题措辞
// 模型调用失败时直接使用模板问题
type LLMQuestionGenerator struct {
	llm      ai.LLMService
	template QuestionGenerator
	logger   *elog.Component
}

func NewLLMQuestionGenerator(llm ai.LLMService, template QuestionGenerator) *LLMQuestionGenerator {
	return &LLMQuestionGenerator{
		llm:      llm,
		template: template,
		logger:   elog.DefaultLogger,
	}
}

func (g *LLMQuestionGenerator) Generate(ctx context.Context,
	job domain.JobProfile) ([]domain.Question, error) {
	questions, err := g.template.Generate(ctx, job)
	if err != nil {
		return nil, err
	}
	for idx := range questions {
		resp, err := g.llm.Invoke(ctx, ai.LLMRequest{
			Uid: job.CompanyID,
			Biz: "interview_question",
			Prompt: fmt.Sprintf("请针对 %s 职位，把下面这道面试题改写得更自然口语化，只返回改写后的问题本身：%s",
				job.Title, questions[idx].Text),
		})
		if err != nil {
			g.logger.Warn("润色面试问题失败，使用模板问题",
				elog.Int64("jobId", job.ID), elog.FieldErr(err))
			return questions, nil
		}
		if resp.Answer != "" {
			questions[idx].Text = resp.Answer
		}
	}
	return questions, nil
}
