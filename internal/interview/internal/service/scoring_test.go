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
	"math/rand"
	"testing"

	"github.com/ecodeclub/aimarket/internal/interview/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func confidence(v float64) *float64 {
	return &v
}

func newTestScoring() *HeuristicScoringStrategy {
	return NewHeuristicScoringStrategy(
		rand.New(rand.NewSource(42)),
		NewStaticNarrativeGenerator())
}

func TestHeuristicScoringStrategy_OverallScore(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name      string
		responses []domain.Response
		wantScore int
		wantAvg   float64
	}{
		{
			name:      "没有任何回答时取默认置信度",
			responses: nil,
			wantScore: 75,
			wantAvg:   75,
		},
		{
			name: "三条回答取均值",
			responses: []domain.Response{
				{Confidence: confidence(80)},
				{Confidence: confidence(90)},
				{Confidence: confidence(70)},
			},
			wantScore: 80,
			wantAvg:   80,
		},
		{
			name: "缺失置信度的回答按默认值参与均值",
			responses: []domain.Response{
				{Confidence: confidence(95)},
				{},
			},
			wantScore: 85,
			wantAvg:   85,
		},
		{
			name: "四舍五入",
			responses: []domain.Response{
				{Confidence: confidence(80)},
				{Confidence: confidence(81)},
			},
			wantScore: 81,
			wantAvg:   80.5,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			strategy := newTestScoring()
			res, err := strategy.Score(context.Background(), domain.Interview{
				Responses: tc.responses,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.wantScore, res.OverallScore)
			assert.InDelta(t, tc.wantAvg, res.AverageConfidence, 0.001)
		})
	}
}

func TestHeuristicScoringStrategy_SubScoreRange(t *testing.T) {
	t.Parallel()
	strategy := newTestScoring()
	for i := 0; i < 100; i++ {
		res, err := strategy.Score(context.Background(), domain.Interview{})
		require.NoError(t, err)
		for _, score := range []int{res.TechnicalScore, res.CommunicationScore, res.BehavioralScore} {
			assert.GreaterOrEqual(t, score, 70)
			assert.LessOrEqual(t, score, 95)
		}
	}
}

func TestHeuristicScoringStrategy_Deterministic(t *testing.T) {
	t.Parallel()
	// 相同种子下两次评分完全一致，测试可以注入固定随机源
	first, err := newTestScoring().Score(context.Background(), domain.Interview{})
	require.NoError(t, err)
	second, err := newTestScoring().Score(context.Background(), domain.Interview{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestHeuristicScoringStrategy_CheatingRisk(t *testing.T) {
	t.Parallel()
	suspiciousEvents := func(n int) []domain.MonitoringEvent {
		events := make([]domain.MonitoringEvent, 0, n)
		for i := 0; i < n; i++ {
			events = append(events, domain.MonitoringEvent{Type: domain.EventLookAway})
		}
		return events
	}
	testCases := []struct {
		name           string
		events         []domain.MonitoringEvent
		wantCount      int
		wantRisk       domain.RiskLevel
		wantIndicators []string
	}{
		{
			name:           "没有可疑事件",
			events:         []domain.MonitoringEvent{{Type: domain.EventNormal}},
			wantCount:      0,
			wantRisk:       domain.RiskLow,
			wantIndicators: []string{},
		},
		{
			name:           "5条可疑事件仍是低风险",
			events:         suspiciousEvents(5),
			wantCount:      5,
			wantRisk:       domain.RiskLow,
			wantIndicators: []string{"5 suspicious monitoring events detected"},
		},
		{
			name:           "6条可疑事件是中风险",
			events:         suspiciousEvents(6),
			wantCount:      6,
			wantRisk:       domain.RiskMedium,
			wantIndicators: []string{"6 suspicious monitoring events detected"},
		},
		{
			name:           "10条可疑事件仍是中风险",
			events:         suspiciousEvents(10),
			wantCount:      10,
			wantRisk:       domain.RiskMedium,
			wantIndicators: []string{"10 suspicious monitoring events detected"},
		},
		{
			name:           "11条可疑事件是高风险",
			events:         suspiciousEvents(11),
			wantCount:      11,
			wantRisk:       domain.RiskHigh,
			wantIndicators: []string{"11 suspicious monitoring events detected"},
		},
		{
			name: "normal 事件不计入可疑数量",
			events: append(suspiciousEvents(6),
				domain.MonitoringEvent{Type: domain.EventNormal},
				domain.MonitoringEvent{Type: domain.EventNormal}),
			wantCount:      6,
			wantRisk:       domain.RiskMedium,
			wantIndicators: []string{"6 suspicious monitoring events detected"},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			strategy := newTestScoring()
			res, err := strategy.Score(context.Background(), domain.Interview{
				MonitoringEvents: tc.events,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.wantCount, res.SuspiciousEventCount)
			assert.Equal(t, tc.wantRisk, res.CheatingRiskLevel)
			assert.Equal(t, tc.wantIndicators, res.CheatingIndicators)
		})
	}
}
