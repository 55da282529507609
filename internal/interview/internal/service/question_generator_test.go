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
	"testing"

	"github.com/ecodeclub/aimarket/internal/interview/internal/domain"
	"github.com/ecodeclub/ekit/slice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateQuestionGenerator_Generate(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name           string
		job            domain.JobProfile
		wantTotal      int
		wantCategories []domain.QuestionCategory
	}{
		{
			name:      "没有技能要求时只有四道固定题",
			job:       domain.JobProfile{ID: 1, Title: "算法工程师"},
			wantTotal: 4,
			wantCategories: []domain.QuestionCategory{
				domain.CategoryGeneral,
				domain.CategoryTechnical,
				domain.CategorySituational,
				domain.CategoryBehavioral,
			},
		},
		{
			name: "两个技能各出一道专项题",
			job: domain.JobProfile{
				ID:     2,
				Title:  "Go 后端工程师",
				Skills: []string{"Go", "MySQL"},
			},
			wantTotal: 6,
			wantCategories: []domain.QuestionCategory{
				domain.CategoryGeneral,
				domain.CategoryTechnical,
				domain.CategoryTechnical,
				domain.CategoryTechnical,
				domain.CategorySituational,
				domain.CategoryBehavioral,
			},
		},
		{
			name: "技能超过三个时截断",
			job: domain.JobProfile{
				ID:     3,
				Title:  "平台工程师",
				Skills: []string{"Go", "MySQL", "Kafka", "Redis", "K8s"},
			},
			wantTotal: 7,
			wantCategories: []domain.QuestionCategory{
				domain.CategoryGeneral,
				domain.CategoryTechnical,
				domain.CategoryTechnical,
				domain.CategoryTechnical,
				domain.CategoryTechnical,
				domain.CategorySituational,
				domain.CategoryBehavioral,
			},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			gen := NewTemplateQuestionGenerator()
			questions, err := gen.Generate(context.Background(), tc.job)
			require.NoError(t, err)
			require.Len(t, questions, tc.wantTotal)
			assert.Equal(t, tc.wantCategories,
				slice.Map(questions, func(_ int, q domain.Question) domain.QuestionCategory {
					return q.Category
				}))
			for idx, q := range questions {
				assert.Equal(t, idx, q.Order)
				assert.NotEmpty(t, q.Text)
				assert.NotEmpty(t, q.ExpectedTopics)
			}
		})
	}
}

func TestTemplateQuestionGenerator_Deterministic(t *testing.T) {
	t.Parallel()
	gen := NewTemplateQuestionGenerator()
	job := domain.JobProfile{ID: 1, Title: "Go 后端工程师", Skills: []string{"Go", "Kafka"}}
	first, err := gen.Generate(context.Background(), job)
	require.NoError(t, err)
	second, err := gen.Generate(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestTemplateQuestionGenerator_SkillTopics(t *testing.T) {
	t.Parallel()
	gen := NewTemplateQuestionGenerator()
	questions, err := gen.Generate(context.Background(), domain.JobProfile{
		ID:     1,
		Title:  "Go 后端工程师",
		Skills: []string{"Kafka"},
	})
	require.NoError(t, err)
	// 第三题是技能专项题，expectedTopics 包含对应技能
	require.Len(t, questions, 5)
	assert.Contains(t, questions[2].ExpectedTopics, "Kafka")
	assert.Contains(t, questions[2].Text, "Kafka")
}
