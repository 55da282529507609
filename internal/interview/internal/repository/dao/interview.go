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
	"context"
	"errors"
	"time"

	"github.com/ecodeclub/aimarket/internal/interview/internal/domain"
	"github.com/ecodeclub/ekit/sqlx"
	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var (
	// ErrRecordNotFound 记录不存在
	ErrRecordNotFound = gorm.ErrRecordNotFound
	// ErrStatusConflict 条件更新没有命中任何行。
	// 要么前置状态不满足，要么有并发请求抢先完成了状态变更。
	ErrStatusConflict = errors.New("面试状态条件更新冲突")
)

// 列表查询只取轻量列，responses 和 monitoring_events 这类大 JSON 列不参与
var listColumns = []string{
	"id", "sn", "company_id", "talent_id", "job_id", "status",
	"scheduled_at", "started_at", "completed_at", "expires_at",
	"total_duration_seconds", "notes", "feedback",
	"viewed_by_company", "viewed_at", "ctime", "utime",
}

// InterviewDAO 定义 AI 面试记录的数据访问接口。
// 所有状态变更都是带前置状态条件的 UPDATE，以 RowsAffected 判定成败，
// 避免读-改-写模式下的丢失更新。
type InterviewDAO interface {
	Create(ctx context.Context, i Interview) (int64, error)
	FindBySN(ctx context.Context, sn string) (Interview, error)
	CountActive(ctx context.Context, companyID, talentID, jobID int64) (int64, error)

	FindByCompany(ctx context.Context, companyID int64, status string, offset, limit int) ([]Interview, error)
	CountByCompany(ctx context.Context, companyID int64, status string) (int64, error)
	FindByTalent(ctx context.Context, talentID int64, status string, offset, limit int) ([]Interview, error)
	CountByTalent(ctx context.Context, talentID int64, status string) (int64, error)

	Start(ctx context.Context, sn string, startedAt int64) error
	AppendResponse(ctx context.Context, sn string, r domain.Response) error
	AppendMonitoringEvent(ctx context.Context, sn string, evt domain.MonitoringEvent) error
	Complete(ctx context.Context, sn string, completedAt, durationSeconds int64, analysis domain.Analysis) error
	Cancel(ctx context.Context, sn string) error

	UpdateNotes(ctx context.Context, sn string, companyID int64, notes string) error
	UpdateFeedback(ctx context.Context, sn string, companyID int64, feedback string) error
	MarkViewed(ctx context.Context, sn string, companyID, viewedAt int64) error

	FindOverdue(ctx context.Context, deadline int64, limit int) ([]Interview, error)
	MarkExpired(ctx context.Context, ids []int64, now int64) (int64, error)
}

// GORMInterviewDAO 是 InterviewDAO 的 GORM 实现
type GORMInterviewDAO struct {
	db *egorm.Component
}

func NewGORMInterviewDAO(db *egorm.Component) InterviewDAO {
	return &GORMInterviewDAO{db: db}
}

func (g *GORMInterviewDAO) Create(ctx context.Context, i Interview) (int64, error) {
	now := time.Now().UnixMilli()
	i.Ctime = now
	i.Utime = now
	i.Version = 1
	err := g.db.WithContext(ctx).Create(&i).Error
	return i.ID, err
}

func (g *GORMInterviewDAO) FindBySN(ctx context.Context, sn string) (Interview, error) {
	var i Interview
	err := g.db.WithContext(ctx).Where("sn = ?", sn).First(&i).Error
	return i, err
}

func (g *GORMInterviewDAO) CountActive(ctx context.Context, companyID, talentID, jobID int64) (int64, error) {
	var count int64
	err := g.db.WithContext(ctx).Model(&Interview{}).
		Where("company_id = ? AND talent_id = ? AND job_id = ? AND status IN ?",
			companyID, talentID, jobID, activeStatuses()).
		Count(&count).Error
	return count, err
}

func activeStatuses() []string {
	return []string{
		domain.StatusPending.String(),
		domain.StatusScheduled.String(),
		domain.StatusInProgress.String(),
	}
}

func (g *GORMInterviewDAO) FindByCompany(ctx context.Context, companyID int64, status string, offset, limit int) ([]Interview, error) {
	return g.findByOwner(ctx, "company_id", companyID, status, offset, limit)
}

func (g *GORMInterviewDAO) CountByCompany(ctx context.Context, companyID int64, status string) (int64, error) {
	return g.countByOwner(ctx, "company_id", companyID, status)
}

func (g *GORMInterviewDAO) FindByTalent(ctx context.Context, talentID int64, status string, offset, limit int) ([]Interview, error) {
	return g.findByOwner(ctx, "talent_id", talentID, status, offset, limit)
}

func (g *GORMInterviewDAO) CountByTalent(ctx context.Context, talentID int64, status string) (int64, error) {
	return g.countByOwner(ctx, "talent_id", talentID, status)
}

func (g *GORMInterviewDAO) findByOwner(ctx context.Context, field string, uid int64, status string, offset, limit int) ([]Interview, error) {
	var res []Interview
	db := g.db.WithContext(ctx).Model(&Interview{}).
		Select(listColumns).
		Where(field+" = ?", uid)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Order("ctime DESC").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (g *GORMInterviewDAO) countByOwner(ctx context.Context, field string, uid int64, status string) (int64, error) {
	var count int64
	db := g.db.WithContext(ctx).Model(&Interview{}).Where(field+" = ?", uid)
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Count(&count).Error
	return count, err
}

// Start 将待开始或已预约的面试置为进行中。
func (g *GORMInterviewDAO) Start(ctx context.Context, sn string, startedAt int64) error {
	res := g.db.WithContext(ctx).Model(&Interview{}).
		Where("sn = ? AND status IN ?", sn, []string{
			domain.StatusPending.String(),
			domain.StatusScheduled.String(),
		}).
		Updates(map[string]any{
			"status":     domain.StatusInProgress.String(),
			"started_at": startedAt,
			"version":    gorm.Expr("version + 1"),
			"utime":      time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

func (g *GORMInterviewDAO) AppendResponse(ctx context.Context, sn string, r domain.Response) error {
	return g.appendInProgress(ctx, sn, func(i *Interview) (string, any) {
		vals := append(i.Responses.Val, r)
		return "responses", sqlx.JsonColumn[[]domain.Response]{Val: vals, Valid: true}
	})
}

func (g *GORMInterviewDAO) AppendMonitoringEvent(ctx context.Context, sn string, evt domain.MonitoringEvent) error {
	return g.appendInProgress(ctx, sn, func(i *Interview) (string, any) {
		vals := append(i.MonitoringEvents.Val, evt)
		return "monitoring_events", sqlx.JsonColumn[[]domain.MonitoringEvent]{Val: vals, Valid: true}
	})
}

// appendInProgress 在事务内读出当前记录，校验进行中状态之后带版本号写回。
// 版本号不匹配说明有并发写入，由调用方决定是否重试。
func (g *GORMInterviewDAO) appendInProgress(ctx context.Context, sn string,
	mutate func(i *Interview) (column string, value any)) error {
	now := time.Now().UnixMilli()
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var i Interview
		if err := tx.Where("sn = ?", sn).First(&i).Error; err != nil {
			return err
		}
		if i.Status != domain.StatusInProgress.String() {
			return ErrStatusConflict
		}
		column, value := mutate(&i)
		res := tx.Model(&Interview{}).
			Where("id = ? AND version = ?", i.ID, i.Version).
			Updates(map[string]any{
				column:    value,
				"version": i.Version + 1,
				"utime":   now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStatusConflict
		}
		return nil
	})
}

// Complete 终结一场进行中的面试，写入完成时间、总时长和分析结果。
func (g *GORMInterviewDAO) Complete(ctx context.Context, sn string, completedAt, durationSeconds int64, analysis domain.Analysis) error {
	res := g.db.WithContext(ctx).Model(&Interview{}).
		Where("sn = ? AND status = ?", sn, domain.StatusInProgress.String()).
		Updates(map[string]any{
			"status":                 domain.StatusCompleted.String(),
			"completed_at":           completedAt,
			"total_duration_seconds": durationSeconds,
			"analysis":               sqlx.JsonColumn[domain.Analysis]{Val: analysis, Valid: true},
			"version":                gorm.Expr("version + 1"),
			"utime":                  time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

// Cancel 允许从已完成之外的任何状态取消。
func (g *GORMInterviewDAO) Cancel(ctx context.Context, sn string) error {
	res := g.db.WithContext(ctx).Model(&Interview{}).
		Where("sn = ? AND status <> ?", sn, domain.StatusCompleted.String()).
		Updates(map[string]any{
			"status":  domain.StatusCancelled.String(),
			"version": gorm.Expr("version + 1"),
			"utime":   time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

func (g *GORMInterviewDAO) UpdateNotes(ctx context.Context, sn string, companyID int64, notes string) error {
	return g.updateCompanyText(ctx, sn, companyID, "notes", notes)
}

func (g *GORMInterviewDAO) UpdateFeedback(ctx context.Context, sn string, companyID int64, feedback string) error {
	return g.updateCompanyText(ctx, sn, companyID, "feedback", feedback)
}

func (g *GORMInterviewDAO) updateCompanyText(ctx context.Context, sn string, companyID int64, column, value string) error {
	res := g.db.WithContext(ctx).Model(&Interview{}).
		Where("sn = ? AND company_id = ?", sn, companyID).
		Updates(map[string]any{
			column:  value,
			"utime": time.Now().UnixMilli(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// MarkViewed 首次查看时打上已读标记。
// 已经打过标记的行不会再命中条件，重复调用不改写 viewed_at。
func (g *GORMInterviewDAO) MarkViewed(ctx context.Context, sn string, companyID, viewedAt int64) error {
	return g.db.WithContext(ctx).Model(&Interview{}).
		Where("sn = ? AND company_id = ? AND viewed_by_company = ?", sn, companyID, false).
		Updates(map[string]any{
			"viewed_by_company": true,
			"viewed_at":         viewedAt,
			"utime":             time.Now().UnixMilli(),
		}).Error
}

func (g *GORMInterviewDAO) FindOverdue(ctx context.Context, deadline int64, limit int) ([]Interview, error) {
	var res []Interview
	err := g.db.WithContext(ctx).Model(&Interview{}).
		Select(listColumns).
		Where("status IN ? AND expires_at <= ?", []string{
			domain.StatusPending.String(),
			domain.StatusScheduled.String(),
		}, deadline).
		Order("expires_at ASC").Limit(limit).Find(&res).Error
	return res, err
}

func (g *GORMInterviewDAO) MarkExpired(ctx context.Context, ids []int64, now int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := g.db.WithContext(ctx).Model(&Interview{}).
		Where("id IN ? AND status IN ?", ids, []string{
			domain.StatusPending.String(),
			domain.StatusScheduled.String(),
		}).
		Updates(map[string]any{
			"status":  domain.StatusExpired.String(),
			"version": gorm.Expr("version + 1"),
			"utime":   now,
		})
	return res.RowsAffected, res.Error
}
