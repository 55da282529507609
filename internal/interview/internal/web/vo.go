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

package web

type CreateReq struct {
	TalentID    int64  `json:"talentId"`
	JobID       int64  `json:"jobId"`
	ScheduledAt int64  `json:"scheduledAt,omitempty"`
	Notes       string `json:"notes,omitempty"`
}

type ListReq struct {
	Status string `json:"status,omitempty"`
	Page   int    `json:"page,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

type ListResp struct {
	Interviews []Interview `json:"interviews"`
	Total      int64       `json:"total"`
	TotalPages int64       `json:"totalPages"`
}

type DetailReq struct {
	SN string `json:"sn"`
}

type StartReq struct {
	SN string `json:"sn"`
}

type SubmitResponseReq struct {
	SN       string   `json:"sn"`
	Response Response `json:"response"`
}

type AddMonitoringEventReq struct {
	SN    string          `json:"sn"`
	Event MonitoringEvent `json:"event"`
}

type CompleteReq struct {
	SN string `json:"sn"`
}

type CancelReq struct {
	SN string `json:"sn"`
}

type UpdateNotesReq struct {
	SN    string `json:"sn"`
	Notes string `json:"notes"`
}

type AddFeedbackReq struct {
	SN       string `json:"sn"`
	Feedback string `json:"feedback"`
}

type Interview struct {
	SN          string `json:"sn"`
	CompanyID   int64  `json:"companyId"`
	TalentID    int64  `json:"talentId"`
	JobID       int64  `json:"jobId"`
	Status      string `json:"status"`
	ScheduledAt int64  `json:"scheduledAt,omitempty"`
	StartedAt   int64  `json:"startedAt,omitempty"`
	CompletedAt int64  `json:"completedAt,omitempty"`
	ExpiresAt   int64  `json:"expiresAt"`

	TotalDurationSeconds int64 `json:"totalDurationSeconds,omitempty"`

	// 列表接口不返回题目、回答和监考事件
	Questions        []Question        `json:"questions,omitempty"`
	Responses        []Response        `json:"responses,omitempty"`
	MonitoringEvents []MonitoringEvent `json:"monitoringEvents,omitempty"`
	Analysis         *Analysis         `json:"analysis,omitempty"`

	Notes    string `json:"notes,omitempty"`
	Feedback string `json:"feedback,omitempty"`

	ViewedByCompany bool  `json:"viewedByCompany"`
	ViewedAt        int64 `json:"viewedAt,omitempty"`

	Ctime int64 `json:"ctime"`
	Utime int64 `json:"utime"`
}

type Question struct {
	Text           string   `json:"text"`
	Category       string   `json:"category"`
	ExpectedTopics []string `json:"expectedTopics"`
	Order          int      `json:"order"`
}

type Response struct {
	QuestionIndex   int      `json:"questionIndex"`
	QuestionText    string   `json:"questionText"`
	ResponseText    string   `json:"responseText"`
	StartTime       int64    `json:"startTime"`
	EndTime         int64    `json:"endTime"`
	DurationSeconds int64    `json:"durationSeconds"`
	Confidence      *float64 `json:"confidence,omitempty"`
	Relevance       *float64 `json:"relevance,omitempty"`
	MediaURLs       []string `json:"mediaUrls,omitempty"`
}

type MonitoringEvent struct {
	Timestamp  int64  `json:"timestamp"`
	Type       string `json:"type"`
	DurationMs int64  `json:"durationMs,omitempty"`
	Details    string `json:"details,omitempty"`
}

type Analysis struct {
	OverallScore       int     `json:"overallScore"`
	AverageConfidence  float64 `json:"averageConfidence"`
	TechnicalScore     int     `json:"technicalScore"`
	CommunicationScore int     `json:"communicationScore"`
	BehavioralScore    int     `json:"behavioralScore"`

	SuspiciousEventCount int      `json:"suspiciousEventCount"`
	CheatingRiskLevel    string   `json:"cheatingRiskLevel"`
	CheatingIndicators   []string `json:"cheatingIndicators"`

	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Recommendations []string `json:"recommendations"`
	KeyInsights     []string `json:"keyInsights"`
}
