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

// Status 定义了 AI 面试记录的有效状态，使用自定义类型以获得类型安全。
type Status string

// 定义面试状态的枚举常量
const (
	StatusPending    Status = "pending"
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusExpired    Status = "expired"
)

// IsValid 检查给定的状态字符串是否为有效的 Status 枚举值。
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusScheduled, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusExpired:
		return true
	default:
		return false
	}
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal 终态不允许任何后续状态变更。
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanStart 只有待开始和已预约的面试可以开始。
func (s Status) CanStart() bool {
	return s == StatusPending || s == StatusScheduled
}

// IsActive 判断是否占用 (company, talent, job) 三元组的活跃名额，
// 用于创建时的重复请求校验。
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusScheduled || s == StatusInProgress
}

// Role 定义了调用方角色。每一次操作都必须显式携带调用方身份和角色，
// 不依赖任何全局会话状态。
type Role string

const (
	RoleCompany Role = "company"
	RoleTalent  Role = "talent"
)

func (r Role) IsValid() bool {
	return r == RoleCompany || r == RoleTalent
}

func (r Role) String() string {
	return string(r)
}

// QuestionCategory 题目类别
type QuestionCategory string

const (
	CategoryTechnical   QuestionCategory = "technical"
	CategoryBehavioral  QuestionCategory = "behavioral"
	CategorySituational QuestionCategory = "situational"
	CategoryGeneral     QuestionCategory = "general"
)

// Question 面试题目，创建之后不可变更。
type Question struct {
	Text           string
	Category       QuestionCategory
	ExpectedTopics []string
	Order          int
}

// Response 人才在面试进行中提交的一条回答。
// Confidence 和 Relevance 由采集端评估，取值 [0,100]，可以缺失。
type Response struct {
	QuestionIndex   int
	QuestionText    string
	ResponseText    string
	StartTime       int64
	EndTime         int64
	DurationSeconds int64
	Confidence      *float64
	Relevance       *float64
	MediaURLs       []string
}

// EventType 监考事件类型
type EventType string

const (
	EventLookAway       EventType = "look_away"
	EventMultipleFaces  EventType = "multiple_faces"
	EventReading        EventType = "reading_detected"
	EventFaceNotVisible EventType = "face_not_visible"
	EventNormal         EventType = "normal"
)

func (t EventType) IsValid() bool {
	switch t {
	case EventLookAway, EventMultipleFaces, EventReading, EventFaceNotVisible, EventNormal:
		return true
	default:
		return false
	}
}

// IsSuspicious 除 normal 外全部计入可疑事件。
func (t EventType) IsSuspicious() bool {
	return t != EventNormal
}

// MonitoringEvent 面试进行中采集到的一条监考信号。
// 完整的事件列表仅对企业方可见。
type MonitoringEvent struct {
	Timestamp  int64
	Type       EventType
	DurationMs int64
	Details    string
}

// JobProfile 职位描述的摘要信息，来自外部的职位目录。
// 本模块只持有引用，不拥有职位实体。
type JobProfile struct {
	ID        int64
	CompanyID int64
	Title     string
	Skills    []string
}

// Interview 是 AI 面试记录的领域模型，也是聚合根。
// 一条记录对应企业和人才之间针对某个职位的一次面试约定。
type Interview struct {
	ID        int64
	SN        string
	CompanyID int64
	TalentID  int64
	JobID     int64

	Status Status

	// 时间戳统一使用毫秒
	ScheduledAt int64
	StartedAt   int64
	CompletedAt int64
	// ExpiresAt 在创建时一次性确定，之后不再重新计算
	ExpiresAt            int64
	TotalDurationSeconds int64

	Questions        []Question
	Responses        []Response
	MonitoringEvents []MonitoringEvent

	// Analysis 在 complete 时生成一次，之后不可变
	Analysis *Analysis

	Notes    string
	Feedback string

	ViewedByCompany bool
	ViewedAt        int64

	Ctime int64
	Utime int64
}

// OwnedByCompany 判断调用方企业是否拥有这条记录
func (i Interview) OwnedByCompany(uid int64) bool {
	return i.CompanyID == uid
}

// OwnedByTalent 判断调用方人才是否拥有这条记录
func (i Interview) OwnedByTalent(uid int64) bool {
	return i.TalentID == uid
}
