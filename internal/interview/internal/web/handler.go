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

import (
	"github.com/ecodeclub/aimarket/internal/interview/internal/domain"
	"github.com/ecodeclub/aimarket/internal/interview/internal/service"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

// Handler 负责处理 AI 面试相关的HTTP请求
type Handler struct {
	svc service.InterviewService
}

func NewHandler(svc service.InterviewService) *Handler {
	return &Handler{svc: svc}
}

// PrivateRoutes 注册需要登录才能访问的路由
func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/interviews")
	g.POST("/create", ginx.BS[CreateReq](h.Create))
	g.POST("/list", ginx.BS[ListReq](h.List))
	g.POST("/detail", ginx.BS[DetailReq](h.Detail))
	g.POST("/start", ginx.BS[StartReq](h.Start))
	g.POST("/response", ginx.BS[SubmitResponseReq](h.SubmitResponse))
	g.POST("/event", ginx.BS[AddMonitoringEventReq](h.AddMonitoringEvent))
	g.POST("/complete", ginx.BS[CompleteReq](h.Complete))
	g.POST("/cancel", ginx.BS[CancelReq](h.Cancel))
	g.POST("/notes", ginx.BS[UpdateNotesReq](h.UpdateNotes))
	g.POST("/feedback", ginx.BS[AddFeedbackReq](h.AddFeedback))
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

// caller 从会话中取出调用方身份和角色
func (h *Handler) caller(sess session.Session) service.Caller {
	role := sess.Claims().Get("role").StringOrDefault("")
	return service.Caller{
		Uid:  sess.Claims().Uid,
		Role: domain.Role(role),
	}
}

// Create 企业针对候选人和职位发起一场 AI 面试
func (h *Handler) Create(ctx *ginx.Context, req CreateReq, sess session.Session) (ginx.Result, error) {
	created, err := h.svc.Create(ctx, service.CreateRequest{
		Caller:      h.caller(sess),
		TalentID:    req.TalentID,
		JobID:       req.JobID,
		ScheduledAt: req.ScheduledAt,
		Notes:       req.Notes,
	})
	if err != nil {
		return errorResult(err)
	}
	return ginx.Result{
		Data: h.toVO(created),
	}, nil
}

// List 按角色返回调用方名下的面试列表，不含回答和监考事件
func (h *Handler) List(ctx *ginx.Context, req ListReq, sess session.Session) (ginx.Result, error) {
	if req.Page <= 0 {
		req.Page = 1
	}
	if req.Limit <= 0 {
		req.Limit = 10
	}
	data, total, err := h.svc.List(ctx, h.caller(sess), req.Status, req.Page, req.Limit)
	if err != nil {
		return errorResult(err)
	}
	return ginx.Result{
		Data: ListResp{
			Interviews: slice.Map(data, func(_ int, src domain.Interview) Interview {
				return h.toListVO(src)
			}),
			Total:      total,
			TotalPages: (total + int64(req.Limit) - 1) / int64(req.Limit),
		},
	}, nil
}

// Detail 返回面试详情。企业方首次查看会打上已读标记，
// 人才侧的返回里不含监考事件。
func (h *Handler) Detail(ctx *ginx.Context, req DetailReq, sess session.Session) (ginx.Result, error) {
	res, err := h.svc.Detail(ctx, h.caller(sess), req.SN)
	if err != nil {
		return errorResult(err)
	}
	return ginx.Result{
		Data: h.toVO(res),
	}, nil
}

// Start 人才开始面试
func (h *Handler) Start(ctx *ginx.Context, req StartReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.Start(ctx, h.caller(sess), req.SN)
	if err != nil {
		return errorResult(err)
	}
	return ginx.Result{Msg: "OK"}, nil
}

// SubmitResponse 人才提交一条回答
func (h *Handler) SubmitResponse(ctx *ginx.Context, req SubmitResponseReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.SubmitResponse(ctx, h.caller(sess), req.SN, domain.Response{
		QuestionIndex:   req.Response.QuestionIndex,
		QuestionText:    req.Response.QuestionText,
		ResponseText:    req.Response.ResponseText,
		StartTime:       req.Response.StartTime,
		EndTime:         req.Response.EndTime,
		DurationSeconds: req.Response.DurationSeconds,
		Confidence:      req.Response.Confidence,
		Relevance:       req.Response.Relevance,
		MediaURLs:       req.Response.MediaURLs,
	})
	if err != nil {
		return errorResult(err)
	}
	return ginx.Result{Msg: "OK"}, nil
}

// AddMonitoringEvent 上报一条监考事件
func (h *Handler) AddMonitoringEvent(ctx *ginx.Context, req AddMonitoringEventReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.AddMonitoringEvent(ctx, h.caller(sess), req.SN, domain.MonitoringEvent{
		Timestamp:  req.Event.Timestamp,
		Type:       domain.EventType(req.Event.Type),
		DurationMs: req.Event.DurationMs,
		Details:    req.Event.Details,
	})
	if err != nil {
		return errorResult(err)
	}
	return ginx.Result{Msg: "OK"}, nil
}

// Complete 人才完成面试，服务端计算时长并生成分析报告
func (h *Handler) Complete(ctx *ginx.Context, req CompleteReq, sess session.Session) (ginx.Result, error) {
	res, err := h.svc.Complete(ctx, h.caller(sess), req.SN)
	if err != nil {
		return errorResult(err)
	}
	return ginx.Result{
		Data: h.toVO(res),
	}, nil
}

// Cancel 双方都可以取消未完成的面试
func (h *Handler) Cancel(ctx *ginx.Context, req CancelReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.Cancel(ctx, h.caller(sess), req.SN)
	if err != nil {
		return errorResult(err)
	}
	return ginx.Result{Msg: "OK"}, nil
}

// UpdateNotes 企业更新面试备注
func (h *Handler) UpdateNotes(ctx *ginx.Context, req UpdateNotesReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.UpdateNotes(ctx, h.caller(sess), req.SN, req.Notes)
	if err != nil {
		return errorResult(err)
	}
	return ginx.Result{Msg: "OK"}, nil
}

// AddFeedback 企业填写面试反馈
func (h *Handler) AddFeedback(ctx *ginx.Context, req AddFeedbackReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.AddFeedback(ctx, h.caller(sess), req.SN, req.Feedback)
	if err != nil {
		return errorResult(err)
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *Handler) toVO(i domain.Interview) Interview {
	res := h.toListVO(i)
	res.Questions = slice.Map(i.Questions, func(_ int, src domain.Question) Question {
		return Question{
			Text:           src.Text,
			Category:       string(src.Category),
			ExpectedTopics: src.ExpectedTopics,
			Order:          src.Order,
		}
	})
	res.Responses = slice.Map(i.Responses, func(_ int, src domain.Response) Response {
		return Response{
			QuestionIndex:   src.QuestionIndex,
			QuestionText:    src.QuestionText,
			ResponseText:    src.ResponseText,
			StartTime:       src.StartTime,
			EndTime:         src.EndTime,
			DurationSeconds: src.DurationSeconds,
			Confidence:      src.Confidence,
			Relevance:       src.Relevance,
			MediaURLs:       src.MediaURLs,
		}
	})
	res.MonitoringEvents = slice.Map(i.MonitoringEvents, func(_ int, src domain.MonitoringEvent) MonitoringEvent {
		return MonitoringEvent{
			Timestamp:  src.Timestamp,
			Type:       string(src.Type),
			DurationMs: src.DurationMs,
			Details:    src.Details,
		}
	})
	if i.Analysis != nil {
		res.Analysis = &Analysis{
			OverallScore:         i.Analysis.OverallScore,
			AverageConfidence:    i.Analysis.AverageConfidence,
			TechnicalScore:       i.Analysis.TechnicalScore,
			CommunicationScore:   i.Analysis.CommunicationScore,
			BehavioralScore:      i.Analysis.BehavioralScore,
			SuspiciousEventCount: i.Analysis.SuspiciousEventCount,
			CheatingRiskLevel:    i.Analysis.CheatingRiskLevel.String(),
			CheatingIndicators:   i.Analysis.CheatingIndicators,
			Strengths:            i.Analysis.Strengths,
			Weaknesses:           i.Analysis.Weaknesses,
			Recommendations:      i.Analysis.Recommendations,
			KeyInsights:          i.Analysis.KeyInsights,
		}
	}
	return res
}

// toListVO 列表场景的裁剪视图
func (h *Handler) toListVO(i domain.Interview) Interview {
	return Interview{
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
		Notes:                i.Notes,
		Feedback:             i.Feedback,
		ViewedByCompany:      i.ViewedByCompany,
		ViewedAt:             i.ViewedAt,
		Ctime:                i.Ctime,
		Utime:                i.Utime,
	}
}
