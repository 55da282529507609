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

package repository

import (
	"context"
	"errors"

	"github.com/ecodeclub/aimarket/internal/interview/internal/domain"
	"github.com/ecodeclub/aimarket/internal/interview/internal/repository/cache"
	"github.com/ecodeclub/aimarket/internal/interview/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ekit/sqlx"
	"github.com/gotomicro/ego/core/elog"
)

var (
	// ErrInterviewNotFound 面试记录不存在
	ErrInterviewNotFound = errors.New("面试记录不存在")
	// ErrStatusConflict 前置状态不满足或并发冲突
	ErrStatusConflict = dao.ErrStatusConflict
)

// InterviewRepository 定义 AI 面试聚合的仓储接口。
// 除 Create 之外的写操作全部是条件更新，仓储层同时负责缓存失效。
type InterviewRepository interface {
	Create(ctx context.Context, i domain.Interview) (int64, error)
	FindBySN(ctx context.Context, sn string) (domain.Interview, error)
	CountActive(ctx context.Context, companyID, talentID, jobID int64) (int64, error)

	ListByCompany(ctx context.Context, companyID int64, status string, offset, limit int) ([]domain.Interview, error)
	CountByCompany(ctx context.Context, companyID int64, status string) (int64, error)
	ListByTalent(ctx context.Context, talentID int64, status string, offset, limit int) ([]domain.Interview, error)
	CountByTalent(ctx context.Context, talentID int64, status string) (int64, error)

	Start(ctx context.Context, sn string, startedAt int64) error
	AppendResponse(ctx context.Context, sn string, r domain.Response) error
	AppendMonitoringEvent(ctx context.Context, sn string, evt domain.MonitoringEvent) error
	Complete(ctx context.Context, sn string, completedAt, durationSeconds int64, analysis domain.Analysis) error
	Cancel(ctx context.Context, sn string) error

	UpdateNotes(ctx context.Context, sn string, companyID int64, notes string) error
	UpdateFeedback(ctx context.Context, sn string, companyID int64, feedback string) error
	MarkViewed(ctx context.Context, sn string, companyID, viewedAt int64) error

	FindOverdue(ctx context.Context, deadline int64, limit int) ([]domain.Interview, error)
	MarkExpired(ctx context.Context, ids []int64, now int64) (int64, error)
}

type interviewRepository struct {
	dao    dao.InterviewDAO
	cache  cache.InterviewCache
	logger *elog.Component
}

func NewInterviewRepository(interviewDAO dao.InterviewDAO, interviewCache cache.InterviewCache) InterviewRepository {
	return &interviewRepository{
		dao:    interviewDAO,
		cache:  interviewCache,
		logger: elog.DefaultLogger,
	}
}

func (r *interviewRepository) Create(ctx context.Context, i domain.Interview) (int64, error) {
	return r.dao.Create(ctx, r.toEntity(i))
}

func (r *interviewRepository) FindBySN(ctx context.Context, sn string) (domain.Interview, error) {
	cached, err := r.cache.Get(ctx, sn)
	if err == nil {
		return cached, nil
	}
	entity, err := r.dao.FindBySN(ctx, sn)
	if err != nil {
		if errors.Is(err, dao.ErrRecordNotFound) {
			return domain.Interview{}, ErrInterviewNotFound
		}
		return domain.Interview{}, err
	}
	res := r.toDomain(entity)
	// 缓存失败只记日志，不影响主流程
	if err := r.cache.Set(ctx, res); err != nil {
		r.logger.Error("缓存面试记录失败", elog.FieldErr(err), elog.String("sn", sn))
	}
	return res, nil
}

func (r *interviewRepository) CountActive(ctx context.Context, companyID, talentID, jobID int64) (int64, error) {
	return r.dao.CountActive(ctx, companyID, talentID, jobID)
}

func (r *interviewRepository) ListByCompany(ctx context.Context, companyID int64, status string, offset, limit int) ([]domain.Interview, error) {
	entities, err := r.dao.FindByCompany(ctx, companyID, status, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(entities, func(_ int, src dao.Interview) domain.Interview {
		return r.toDomain(src)
	}), nil
}

func (r *interviewRepository) CountByCompany(ctx context.Context, companyID int64, status string) (int64, error) {
	return r.dao.CountByCompany(ctx, companyID, status)
}

func (r *interviewRepository) ListByTalent(ctx context.Context, talentID int64, status string, offset, limit int) ([]domain.Interview, error) {
	entities, err := r.dao.FindByTalent(ctx, talentID, status, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(entities, func(_ int, src dao.Interview) domain.Interview {
		return r.toDomain(src)
	}), nil
}

func (r *interviewRepository) CountByTalent(ctx context.Context, talentID int64, status string) (int64, error) {
	return r.dao.CountByTalent(ctx, talentID, status)
}

func (r *interviewRepository) Start(ctx context.Context, sn string, startedAt int64) error {
	return r.invalidateAfter(ctx, sn, r.dao.Start(ctx, sn, startedAt))
}

func (r *interviewRepository) AppendResponse(ctx context.Context, sn string, resp domain.Response) error {
	return r.invalidateAfter(ctx, sn, r.dao.AppendResponse(ctx, sn, resp))
}

func (r *interviewRepository) AppendMonitoringEvent(ctx context.Context, sn string, evt domain.MonitoringEvent) error {
	return r.invalidateAfter(ctx, sn, r.dao.AppendMonitoringEvent(ctx, sn, evt))
}

func (r *interviewRepository) Complete(ctx context.Context, sn string, completedAt, durationSeconds int64, analysis domain.Analysis) error {
	return r.invalidateAfter(ctx, sn, r.dao.Complete(ctx, sn, completedAt, durationSeconds, analysis))
}

func (r *interviewRepository) Cancel(ctx context.Context, sn string) error {
	return r.invalidateAfter(ctx, sn, r.dao.Cancel(ctx, sn))
}

func (r *interviewRepository) UpdateNotes(ctx context.Context, sn string, companyID int64, notes string) error {
	err := r.dao.UpdateNotes(ctx, sn, companyID, notes)
	if errors.Is(err, dao.ErrRecordNotFound) {
		return ErrInterviewNotFound
	}
	return r.invalidateAfter(ctx, sn, err)
}

func (r *interviewRepository) UpdateFeedback(ctx context.Context, sn string, companyID int64, feedback string) error {
	err := r.dao.UpdateFeedback(ctx, sn, companyID, feedback)
	if errors.Is(err, dao.ErrRecordNotFound) {
		return ErrInterviewNotFound
	}
	return r.invalidateAfter(ctx, sn, err)
}

func (r *interviewRepository) MarkViewed(ctx context.Context, sn string, companyID, viewedAt int64) error {
	return r.invalidateAfter(ctx, sn, r.dao.MarkViewed(ctx, sn, companyID, viewedAt))
}

func (r *interviewRepository) FindOverdue(ctx context.Context, deadline int64, limit int) ([]domain.Interview, error) {
	entities, err := r.dao.FindOverdue(ctx, deadline, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(entities, func(_ int, src dao.Interview) domain.Interview {
		return r.toDomain(src)
	}), nil
}

func (r *interviewRepository) MarkExpired(ctx context.Context, ids []int64, now int64) (int64, error) {
	return r.dao.MarkExpired(ctx, ids, now)
}

// invalidateAfter 写操作成功之后删除详情缓存。删除失败只记日志，
// 缓存有兜底的过期时间。
func (r *interviewRepository) invalidateAfter(ctx context.Context, sn string, err error) error {
	if err != nil {
		return err
	}
	if derr := r.cache.Del(ctx, sn); derr != nil {
		r.logger.Error("删除面试详情缓存失败", elog.FieldErr(derr), elog.String("sn", sn))
	}
	return nil
}

func (r *interviewRepository) toEntity(i domain.Interview) dao.Interview {
	return dao.Interview{
		ID:                   i.ID,
		SN:                   i.SN,
		CompanyID:            i.CompanyID,
		TalentID:             i.TalentID,
		JobID:                i.JobID,
		Status:               i.Status.String(),
		ScheduledAt:          i.ScheduledAt,
		StartedAt:            i.StartedAt,
		CompletedAt:          i.CompletedAt,
		ExpiresAt:            i.ExpiresAt,
		TotalDurationSeconds: i.TotalDurationSeconds,
		Questions: sqlx.JsonColumn[[]domain.Question]{
			Val:   i.Questions,
			Valid: true,
		},
		Responses: sqlx.JsonColumn[[]domain.Response]{
			Val:   i.Responses,
			Valid: true,
		},
		MonitoringEvents: sqlx.JsonColumn[[]domain.MonitoringEvent]{
			Val:   i.MonitoringEvents,
			Valid: true,
		},
		Analysis: sqlx.JsonColumn[domain.Analysis]{
			Val:   analysisOrZero(i.Analysis),
			Valid: i.Analysis != nil,
		},
		Notes:           i.Notes,
		Feedback:        i.Feedback,
		ViewedByCompany: i.ViewedByCompany,
		ViewedAt:        i.ViewedAt,
	}
}

func analysisOrZero(a *domain.Analysis) domain.Analysis {
	if a == nil {
		return domain.Analysis{}
	}
	return *a
}

func (r *interviewRepository) toDomain(e dao.Interview) domain.Interview {
	res := domain.Interview{
		ID:                   e.ID,
		SN:                   e.SN,
		CompanyID:            e.CompanyID,
		TalentID:             e.TalentID,
		JobID:                e.JobID,
		Status:               domain.Status(e.Status),
		ScheduledAt:          e.ScheduledAt,
		StartedAt:            e.StartedAt,
		CompletedAt:          e.CompletedAt,
		ExpiresAt:            e.ExpiresAt,
		TotalDurationSeconds: e.TotalDurationSeconds,
		Questions:            e.Questions.Val,
		Responses:            e.Responses.Val,
		MonitoringEvents:     e.MonitoringEvents.Val,
		Notes:                e.Notes,
		Feedback:             e.Feedback,
		ViewedByCompany:      e.ViewedByCompany,
		ViewedAt:             e.ViewedAt,
		Ctime:                e.Ctime,
		Utime:                e.Utime,
	}
	if e.Analysis.Valid {
		analysis := e.Analysis.Val
		res.Analysis = &analysis
	}
	return res
}
