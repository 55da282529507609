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

package dao

import (
	"github.com/ecodeclub/aimarket/internal/interview/internal/domain"
	"github.com/ecodeclub/ekit/sqlx"
	"github.com/ego-component/egorm"
)

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Interview{})
}

// Interview AI 面试记录。题目、回答、监考事件和分析结果以 JSON 列存储，
// 记录本身就是聚合的持久化形态。
type Interview struct {
	ID        int64  `gorm:"primaryKey;autoIncrement;comment:自增ID"`
	SN        string `gorm:"type:varchar(64);not null;uniqueIndex:uniq_interview_sn;comment:面试序列号"`
	CompanyID int64  `gorm:"not null;index:idx_company_id;comment:企业UID"`
	TalentID  int64  `gorm:"not null;index:idx_talent_id;comment:人才UID"`
	JobID     int64  `gorm:"not null;index:idx_job_id;comment:职位描述ID"`
	Status    string `gorm:"type:varchar(32);not null;index:idx_status_expires,priority:1;comment:面试状态"`

	ScheduledAt int64 `gorm:"not null;default:0;comment:预约时间"`
	StartedAt   int64 `gorm:"not null;default:0;comment:开始时间"`
	CompletedAt int64 `gorm:"not null;default:0;comment:完成时间"`
	// 创建时一次性确定，过期清扫任务按这个时间判定
	ExpiresAt            int64 `gorm:"not null;index:idx_status_expires,priority:2;comment:过期时间"`
	TotalDurationSeconds int64 `gorm:"not null;default:0;comment:面试总时长（秒）"`

	Questions        sqlx.JsonColumn[[]domain.Question]        `gorm:"type:json;comment:题目列表JSON"`
	Responses        sqlx.JsonColumn[[]domain.Response]        `gorm:"type:json;comment:回答列表JSON"`
	MonitoringEvents sqlx.JsonColumn[[]domain.MonitoringEvent] `gorm:"type:json;comment:监考事件列表JSON"`
	Analysis         sqlx.JsonColumn[domain.Analysis]          `gorm:"type:json;comment:完成时生成的分析结果JSON"`

	Notes    string `gorm:"type:text;comment:企业备注"`
	Feedback string `gorm:"type:text;comment:企业反馈"`

	ViewedByCompany bool  `gorm:"not null;default:false;comment:企业是否已查看"`
	ViewedAt        int64 `gorm:"not null;default:0;comment:企业首次查看时间"`

	// 乐观锁版本号，追加回答和监考事件时使用
	Version int64 `gorm:"not null;default:1;comment:乐观锁版本号"`

	Ctime int64 `gorm:"index:idx_ctime"`
	Utime int64
}

func (Interview) TableName() string {
	return "ai_interviews"
}
