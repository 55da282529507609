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

// RiskLevel 作弊风险等级
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

func (r RiskLevel) String() string {
	return string(r)
}

// RiskLevelOf 根据可疑监考事件数量计算风险等级。
// 阈值：>10 高风险，>5 中风险，否则低风险。
func RiskLevelOf(suspiciousCount int) RiskLevel {
	switch {
	case suspiciousCount > 10:
		return RiskHigh
	case suspiciousCount > 5:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Analysis 面试完成时生成的分析结果。
// OverallScore、SuspiciousEventCount、CheatingRiskLevel 和 CheatingIndicators
// 由输入确定性推导；其余字段来自可替换的评分与文案策略。
type Analysis struct {
	OverallScore       int
	AverageConfidence  float64
	TechnicalScore     int
	CommunicationScore int
	BehavioralScore    int

	SuspiciousEventCount int
	CheatingRiskLevel    RiskLevel
	CheatingIndicators   []string

	Strengths       []string
	Weaknesses      []string
	Recommendations []string
	KeyInsights     []string
}
