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
	"math"
	"math/rand"
	"sync"

	"github.com/ecodeclub/aimarket/internal/interview/internal/domain"
)

// 没有明确置信度时的默认值
const defaultConfidence = 75.0

// ScoringStrategy 面试评分策略
// 完成面试时执行一次，根据回答和监考事件计算分析结果
// 后续接入真实的模型评估时替换实现即可，状态机不感知
type ScoringStrategy interface {
	Score(ctx context.Context, interview domain.Interview) (domain.Analysis, error)
}

// HeuristicScoringStrategy 启发式评分
// overallScore、作弊风险和作弊指标是确定性推导
// 三个分项分数目前没有真实评估依据，用注入的随机源在 [70, 95] 内采样
type HeuristicScoringStrategy struct {
	mu        sync.Mutex
	rnd       *rand.Rand
	narrative NarrativeGenerator
}

func NewHeuristicScoringStrategy(rnd *rand.Rand, narrative NarrativeGenerator) *HeuristicScoringStrategy {
	return &HeuristicScoringStrategy{
		rnd:       rnd,
		narrative: narrative,
	}
}

func (s *HeuristicScoringStrategy) Score(ctx context.Context, interview domain.Interview) (domain.Analysis, error) {
	avg := averageConfidence(interview.Responses)
	suspicious := suspiciousEventCount(interview.MonitoringEvents)

	res := domain.Analysis{
		OverallScore:         int(math.Round(avg)),
		AverageConfidence:    avg,
		TechnicalScore:       s.sampleScore(),
		CommunicationScore:   s.sampleScore(),
		BehavioralScore:      s.sampleScore(),
		SuspiciousEventCount: suspicious,
		CheatingRiskLevel:    domain.RiskLevelOf(suspicious),
		CheatingIndicators:   []string{},
	}
	if suspicious > 0 {
		res.CheatingIndicators = []string{
			fmt.Sprintf("%d suspicious monitoring events detected", suspicious),
		}
	}

	narrative, err := s.narrative.Generate(ctx, interview, res)
	if err != nil {
		return domain.Analysis{}, err
	}
	res.Strengths = narrative.Strengths
	res.Weaknesses = narrative.Weaknesses
	res.Recommendations = narrative.Recommendations
	res.KeyInsights = narrative.KeyInsights
	return res, nil
}

// sampleScore 在 [70, 95] 闭区间内采样
func (s *HeuristicScoringStrategy) sampleScore() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return 70 + s.rnd.Intn(26)
}

func averageConfidence(responses []domain.Response) float64 {
	if len(responses) == 0 {
		return defaultConfidence
	}
	var sum float64
	for _, r := range responses {
		if r.Confidence != nil {
			sum += *r.Confidence
		} else {
			sum += defaultConfidence
		}
	}
	return sum / float64(len(responses))
}

func suspiciousEventCount(events []domain.MonitoringEvent) int {
	var cnt int
	for _, evt := range events {
		if evt.Type.IsSuspicious() {
			cnt++
		}
	}
	return cnt
}
