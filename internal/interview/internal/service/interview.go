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
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/ecodeclub/aimarket/internal/email"
	"github.com/ecodeclub/aimarket/internal/interview/internal/domain"
	"github.com/ecodeclub/aimarket/internal/interview/internal/event"
	"github.com/ecodeclub/aimarket/internal/interview/internal/repository"
	"github.com/ecodeclub/aimarket/internal/marketplace"
	"github.com/gotomicro/ego/core/elog"
	"github.com/lithammer/shortuuid/v4"
	"golang.org/x/sync/errgroup"
)

// 未显式预约时，面试请求自创建起 7 天内有效
const validityPeriod = 7 * 24 * time.Hour

var (
	// ErrInterviewNotFound 记录不存在，或者存在但不属于调用方。
	// 两种情况刻意不做区分，避免向无关调用方泄露记录的存在性。
	ErrInterviewNotFound = repository.ErrInterviewNotFound
	// ErrPermissionDenied 角色不允许执行该动作
	ErrPermissionDenied = errors.New("无权执行该操作")
	// ErrDuplicateInterview 同一企业、人才、职位三元组已有活跃的面试请求
	ErrDuplicateInterview = errors.New("已存在进行中的面试请求")
	// ErrInvalidInput 入参非法
	ErrInvalidInput = errors.New("参数非法")
	// ErrTalentNotFound 候选人不存在
	ErrTalentNotFound = errors.New("候选人不存在")
	// ErrJobNotFound 职位不存在，或者不属于调用方企业
	ErrJobNotFound = errors.New("职位不存在")
)

// StatusTransitionError 当前状态不满足动作的前置条件
type StatusTransitionError struct {
	Current domain.Status
	Action  string
}

func (e *StatusTransitionError) Error() string {
	return fmt.Sprintf("当前状态 %s 不允许执行 %s", e.Current, e.Action)
}

// Caller 调用方身份。每个操作都显式携带，不读取任何全局会话状态。
type Caller struct {
	Uid  int64
	Role domain.Role
}

// CreateRequest 企业发起面试请求的参数
type CreateRequest struct {
	Caller      Caller
	TalentID    int64
	JobID       int64
	ScheduledAt int64
	Notes       string
}

// InterviewService 面试状态机的唯一入口。
// 所有状态变更都先校验调用方身份，再以条件更新的方式落库，
// 并发时前置条件互斥的两个请求最多只有一个成功。
//
//go:generate mockgen -source=./interview.go -destination=../../mocks/interview.mock.go -package=interviewmocks -typed=true InterviewService
type InterviewService interface {
	Create(ctx context.Context, req CreateRequest) (domain.Interview, error)
	List(ctx context.Context, caller Caller, status string, page, limit int) ([]domain.Interview, int64, error)
	Detail(ctx context.Context, caller Caller, sn string) (domain.Interview, error)

	Start(ctx context.Context, caller Caller, sn string) error
	SubmitResponse(ctx context.Context, caller Caller, sn string, r domain.Response) error
	AddMonitoringEvent(ctx context.Context, caller Caller, sn string, evt domain.MonitoringEvent) error
	Complete(ctx context.Context, caller Caller, sn string) (domain.Interview, error)
	Cancel(ctx context.Context, caller Caller, sn string) error

	UpdateNotes(ctx context.Context, caller Caller, sn string, notes string) error
	AddFeedback(ctx context.Context, caller Caller, sn string, feedback string) error

	// ExpireOverdue 将超过有效期仍未开始的面试置为过期，返回处理条数。
	// 由定时任务调用。
	ExpireOverdue(ctx context.Context, now time.Time, limit int) (int64, error)
}

type interviewService struct {
	repo        repository.InterviewRepository
	marketplace marketplace.Service
	questionGen QuestionGenerator
	scoring     ScoringStrategy
	producer    *event.InterviewStatusEventProducer
	emailSvc    email.Service
	logger      *elog.Component
}

func NewInterviewService(
	repo repository.InterviewRepository,
	marketplaceSvc marketplace.Service,
	questionGen QuestionGenerator,
	scoring ScoringStrategy,
	producer *event.InterviewStatusEventProducer,
	emailSvc email.Service,
) InterviewService {
	return &interviewService{
		repo:        repo,
		marketplace: marketplaceSvc,
		questionGen: questionGen,
		scoring:     scoring,
		producer:    producer,
		emailSvc:    emailSvc,
		logger:      elog.DefaultLogger,
	}
}

func (s *interviewService) Create(ctx context.Context, req CreateRequest) (domain.Interview, error) {
	if req.Caller.Role != domain.RoleCompany {
		return domain.Interview{}, ErrPermissionDenied
	}
	if req.TalentID <= 0 || req.JobID <= 0 {
		return domain.Interview{}, fmt.Errorf("%w: talentId 和 jobId 必须为正数", ErrInvalidInput)
	}

	talent, err := s.marketplace.TalentByID(ctx, req.TalentID)
	if err != nil {
		if errors.Is(err, marketplace.ErrNotFound) {
			return domain.Interview{}, ErrTalentNotFound
		}
		return domain.Interview{}, err
	}
	job, err := s.marketplace.JobByID(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, marketplace.ErrNotFound) {
			return domain.Interview{}, ErrJobNotFound
		}
		return domain.Interview{}, err
	}
	// 职位不属于调用方企业时同样按不存在处理
	if job.CompanyID != req.Caller.Uid {
		return domain.Interview{}, ErrJobNotFound
	}

	cnt, err := s.repo.CountActive(ctx, req.Caller.Uid, req.TalentID, req.JobID)
	if err != nil {
		return domain.Interview{}, err
	}
	if cnt > 0 {
		return domain.Interview{}, ErrDuplicateInterview
	}

	questions, err := s.questionGen.Generate(ctx, domain.JobProfile{
		ID:        job.ID,
		CompanyID: job.CompanyID,
		Title:     job.Title,
		Skills:    job.Skills,
	})
	if err != nil {
		return domain.Interview{}, err
	}

	now := time.Now()
	res := domain.Interview{
		SN:        shortuuid.New(),
		CompanyID: req.Caller.Uid,
		TalentID:  req.TalentID,
		JobID:     req.JobID,
		Status:    domain.StatusPending,
		// 有效期在创建时一次性确定
		ExpiresAt: now.Add(validityPeriod).UnixMilli(),
		Questions: questions,
		Notes:     req.Notes,
	}
	if req.ScheduledAt > 0 {
		res.Status = domain.StatusScheduled
		res.ScheduledAt = req.ScheduledAt
		res.ExpiresAt = time.UnixMilli(req.ScheduledAt).Add(validityPeriod).UnixMilli()
	}

	id, err := s.repo.Create(ctx, res)
	if err != nil {
		return domain.Interview{}, err
	}
	res.ID = id
	res.Ctime = now.UnixMilli()
	res.Utime = now.UnixMilli()

	s.produceStatusEvent(ctx, res)
	s.sendInvitation(ctx, talent, job, res)
	return res, nil
}

func (s *interviewService) List(ctx context.Context, caller Caller,
	status string, page, limit int) ([]domain.Interview, int64, error) {
	if status != "" && !domain.Status(status).IsValid() {
		return nil, 0, fmt.Errorf("%w: 未知状态 %s", ErrInvalidInput, status)
	}
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit

	var (
		eg    errgroup.Group
		data  []domain.Interview
		total int64
	)
	switch caller.Role {
	case domain.RoleCompany:
		eg.Go(func() error {
			var err error
			data, err = s.repo.ListByCompany(ctx, caller.Uid, status, offset, limit)
			return err
		})
		eg.Go(func() error {
			var err error
			total, err = s.repo.CountByCompany(ctx, caller.Uid, status)
			return err
		})
	case domain.RoleTalent:
		eg.Go(func() error {
			var err error
			data, err = s.repo.ListByTalent(ctx, caller.Uid, status, offset, limit)
			return err
		})
		eg.Go(func() error {
			var err error
			total, err = s.repo.CountByTalent(ctx, caller.Uid, status)
			return err
		})
	default:
		return nil, 0, ErrPermissionDenied
	}
	if err := eg.Wait(); err != nil {
		return nil, 0, err
	}
	return data, total, nil
}

func (s *interviewService) Detail(ctx context.Context, caller Caller, sn string) (domain.Interview, error) {
	res, err := s.resolve(ctx, caller, sn)
	if err != nil {
		return domain.Interview{}, err
	}
	switch caller.Role {
	case domain.RoleCompany:
		// 企业方首次查看时打上已读标记，重复查看不更新
		if !res.ViewedByCompany {
			viewedAt := time.Now().UnixMilli()
			if err := s.repo.MarkViewed(ctx, sn, caller.Uid, viewedAt); err != nil {
				return domain.Interview{}, err
			}
			res.ViewedByCompany = true
			res.ViewedAt = viewedAt
		}
	case domain.RoleTalent:
		// 监考事件只对企业方可见
		res.MonitoringEvents = nil
	}
	return res, nil
}

func (s *interviewService) Start(ctx context.Context, caller Caller, sn string) error {
	res, err := s.resolve(ctx, caller, sn)
	if err != nil {
		return err
	}
	if caller.Role != domain.RoleTalent {
		return ErrPermissionDenied
	}
	if !res.Status.CanStart() {
		return &StatusTransitionError{Current: res.Status, Action: "start"}
	}
	err = s.repo.Start(ctx, sn, time.Now().UnixMilli())
	if err != nil {
		return s.mapConflict(ctx, err, sn, "start")
	}
	res.Status = domain.StatusInProgress
	s.produceStatusEvent(ctx, res)
	return nil
}

func (s *interviewService) SubmitResponse(ctx context.Context, caller Caller,
	sn string, r domain.Response) error {
	if r.ResponseText == "" || r.QuestionIndex < 0 {
		return fmt.Errorf("%w: 回答内容不能为空", ErrInvalidInput)
	}
	res, err := s.resolve(ctx, caller, sn)
	if err != nil {
		return err
	}
	if caller.Role != domain.RoleTalent {
		return ErrPermissionDenied
	}
	if res.Status != domain.StatusInProgress {
		return &StatusTransitionError{Current: res.Status, Action: "submit_response"}
	}
	err = s.repo.AppendResponse(ctx, sn, r)
	return s.mapConflict(ctx, err, sn, "submit_response")
}

func (s *interviewService) AddMonitoringEvent(ctx context.Context, caller Caller,
	sn string, evt domain.MonitoringEvent) error {
	if !evt.Type.IsValid() {
		return fmt.Errorf("%w: 未知监考事件类型 %s", ErrInvalidInput, evt.Type)
	}
	res, err := s.resolve(ctx, caller, sn)
	if err != nil {
		return err
	}
	if caller.Role != domain.RoleTalent {
		return ErrPermissionDenied
	}
	if res.Status != domain.StatusInProgress {
		return &StatusTransitionError{Current: res.Status, Action: "add_monitoring_event"}
	}
	if evt.Timestamp == 0 {
		evt.Timestamp = time.Now().UnixMilli()
	}
	err = s.repo.AppendMonitoringEvent(ctx, sn, evt)
	return s.mapConflict(ctx, err, sn, "add_monitoring_event")
}

func (s *interviewService) Complete(ctx context.Context, caller Caller, sn string) (domain.Interview, error) {
	res, err := s.resolve(ctx, caller, sn)
	if err != nil {
		return domain.Interview{}, err
	}
	if caller.Role != domain.RoleTalent {
		return domain.Interview{}, ErrPermissionDenied
	}
	if res.Status != domain.StatusInProgress {
		return domain.Interview{}, &StatusTransitionError{Current: res.Status, Action: "complete"}
	}

	analysis, err := s.scoring.Score(ctx, res)
	if err != nil {
		return domain.Interview{}, fmt.Errorf("计算面试分析失败: %w", err)
	}

	completedAt := time.Now().UnixMilli()
	duration := int64(math.Round(float64(completedAt-res.StartedAt) / 1000))
	err = s.repo.Complete(ctx, sn, completedAt, duration, analysis)
	if err != nil {
		return domain.Interview{}, s.mapConflict(ctx, err, sn, "complete")
	}

	res.Status = domain.StatusCompleted
	res.CompletedAt = completedAt
	res.TotalDurationSeconds = duration
	res.Analysis = &analysis
	s.produceStatusEvent(ctx, res)
	s.sendCompletionNotice(ctx, res)
	return res, nil
}

func (s *interviewService) Cancel(ctx context.Context, caller Caller, sn string) error {
	res, err := s.resolve(ctx, caller, sn)
	if err != nil {
		return err
	}
	// 双方都可以取消，已完成的面试除外
	if res.Status == domain.StatusCompleted {
		return &StatusTransitionError{Current: res.Status, Action: "cancel"}
	}
	err = s.repo.Cancel(ctx, sn)
	if err != nil {
		return s.mapConflict(ctx, err, sn, "cancel")
	}
	res.Status = domain.StatusCancelled
	s.produceStatusEvent(ctx, res)
	return nil
}

func (s *interviewService) UpdateNotes(ctx context.Context, caller Caller, sn string, notes string) error {
	if caller.Role != domain.RoleCompany {
		return ErrPermissionDenied
	}
	return s.repo.UpdateNotes(ctx, sn, caller.Uid, notes)
}

func (s *interviewService) AddFeedback(ctx context.Context, caller Caller, sn string, feedback string) error {
	if caller.Role != domain.RoleCompany {
		return ErrPermissionDenied
	}
	return s.repo.UpdateFeedback(ctx, sn, caller.Uid, feedback)
}

func (s *interviewService) ExpireOverdue(ctx context.Context, now time.Time, limit int) (int64, error) {
	overdue, err := s.repo.FindOverdue(ctx, now.UnixMilli(), limit)
	if err != nil {
		return 0, err
	}
	if len(overdue) == 0 {
		return 0, nil
	}
	ids := make([]int64, 0, len(overdue))
	for _, itv := range overdue {
		ids = append(ids, itv.ID)
	}
	cnt, err := s.repo.MarkExpired(ctx, ids, now.UnixMilli())
	if err != nil {
		return 0, err
	}
	for _, itv := range overdue {
		itv.Status = domain.StatusExpired
		s.produceStatusEvent(ctx, itv)
	}
	return cnt, nil
}

// resolve 查询记录并校验归属。记录不存在和归属不匹配返回同一个错误，
// 不向调用方泄露记录是否存在。
func (s *interviewService) resolve(ctx context.Context, caller Caller, sn string) (domain.Interview, error) {
	res, err := s.repo.FindBySN(ctx, sn)
	if err != nil {
		return domain.Interview{}, err
	}
	switch caller.Role {
	case domain.RoleCompany:
		if !res.OwnedByCompany(caller.Uid) {
			return domain.Interview{}, ErrInterviewNotFound
		}
	case domain.RoleTalent:
		if !res.OwnedByTalent(caller.Uid) {
			return domain.Interview{}, ErrInterviewNotFound
		}
	default:
		return domain.Interview{}, ErrPermissionDenied
	}
	return res, nil
}

// mapConflict 条件更新没有命中时，重读最新状态构造状态错误。
// 并发场景下先检查后更新之间状态可能已经变了，以落库时的判断为准。
func (s *interviewService) mapConflict(ctx context.Context, err error, sn string, action string) error {
	if err == nil || !errors.Is(err, repository.ErrStatusConflict) {
		return err
	}
	latest, ferr := s.repo.FindBySN(ctx, sn)
	if ferr != nil {
		return &StatusTransitionError{Current: "", Action: action}
	}
	return &StatusTransitionError{Current: latest.Status, Action: action}
}

func (s *interviewService) produceStatusEvent(ctx context.Context, i domain.Interview) {
	evt := event.InterviewStatusEvent{
		SN:        i.SN,
		CompanyID: i.CompanyID,
		TalentID:  i.TalentID,
		JobID:     i.JobID,
		Status:    i.Status.String(),
		Timestamp: time.Now().UnixMilli(),
	}
	if err := s.producer.Produce(ctx, evt); err != nil {
		s.logger.Error("发送面试状态变更事件失败",
			elog.String("sn", i.SN),
			elog.String("status", evt.Status),
			elog.FieldErr(err))
	}
}

// sendInvitation 给候选人发送面试邀请邮件，失败只记日志
func (s *interviewService) sendInvitation(ctx context.Context,
	talent marketplace.Talent, job marketplace.Job, i domain.Interview) {
	if talent.Email == "" {
		return
	}
	body := fmt.Sprintf(`<p>%s 你好，</p>
<p>你收到了一个针对 <strong>%s</strong> 职位的 AI 面试邀请，请在 %s 之前完成面试。</p>`,
		talent.Name, job.Title,
		time.UnixMilli(i.ExpiresAt).Format("2006-01-02 15:04"))
	err := s.emailSvc.SendMail(ctx, email.Mail{
		From:    "AI 面试",
		To:      talent.Email,
		Subject: fmt.Sprintf("面试邀请：%s", job.Title),
		Body:    []byte(body),
	})
	if err != nil {
		s.logger.Error("发送面试邀请邮件失败",
			elog.String("sn", i.SN), elog.FieldErr(err))
	}
}

// sendCompletionNotice 面试完成后通知企业方查看报告，失败只记日志
func (s *interviewService) sendCompletionNotice(ctx context.Context, i domain.Interview) {
	company, err := s.marketplace.CompanyByID(ctx, i.CompanyID)
	if err != nil || company.Email == "" {
		if err != nil {
			s.logger.Warn("查询企业信息失败，跳过完成通知",
				elog.String("sn", i.SN), elog.FieldErr(err))
		}
		return
	}
	body := fmt.Sprintf(`<p>%s 你好，</p>
<p>候选人已完成 AI 面试（编号 %s），分析报告已生成，请登录查看。</p>`, company.Name, i.SN)
	err = s.emailSvc.SendMail(ctx, email.Mail{
		From:    "AI 面试",
		To:      company.Email,
		Subject: "面试已完成，分析报告可查看",
		Body:    []byte(body),
	})
	if err != nil {
		s.logger.Error("发送面试完成通知邮件失败",
			elog.String("sn", i.SN), elog.FieldErr(err))
	}
}
