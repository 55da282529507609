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

//go:build e2e

package integration

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/ecodeclub/aimarket/internal/ai"
	"github.com/ecodeclub/aimarket/internal/email"
	"github.com/ecodeclub/aimarket/internal/interview"
	"github.com/ecodeclub/aimarket/internal/interview/internal/domain"
	"github.com/ecodeclub/aimarket/internal/interview/internal/repository/dao"
	"github.com/ecodeclub/aimarket/internal/interview/internal/web"
	"github.com/ecodeclub/aimarket/internal/marketplace"
	"github.com/ecodeclub/aimarket/internal/test"
	testioc "github.com/ecodeclub/aimarket/internal/test/ioc"
	"github.com/ecodeclub/ekit/iox"
	"github.com/ecodeclub/ginx/session"
	"github.com/ego-component/egorm"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/econf"
	"github.com/gotomicro/ego/server/egin"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	companyID = int64(301)
	talentID  = int64(1001)
	jobID     = int64(2001)
)

type fakeMarketplace struct{}

func (f *fakeMarketplace) TalentByID(ctx context.Context, id int64) (marketplace.Talent, error) {
	if id != talentID {
		return marketplace.Talent{}, marketplace.ErrNotFound
	}
	return marketplace.Talent{ID: id, Name: "张三", Email: "zhangsan@example.com"}, nil
}

func (f *fakeMarketplace) JobByID(ctx context.Context, id int64) (marketplace.Job, error) {
	if id != jobID {
		return marketplace.Job{}, marketplace.ErrNotFound
	}
	return marketplace.Job{ID: id, CompanyID: companyID,
		Title: "Go 后端工程师", Skills: []string{"Go", "MySQL"}}, nil
}

func (f *fakeMarketplace) CompanyByID(ctx context.Context, id int64) (marketplace.Company, error) {
	return marketplace.Company{ID: id, Name: "示例科技", Email: "hr@example.com"}, nil
}

// fakeLLM 始终失败，出题和评语走确定性的兜底逻辑
type fakeLLM struct{}

func (f *fakeLLM) Invoke(ctx context.Context, req ai.LLMRequest) (ai.LLMResponse, error) {
	return ai.LLMResponse{}, errors.New("模型服务不可用")
}

type fakeEmail struct{}

func (f *fakeEmail) SendMail(ctx context.Context, mail email.Mail) error {
	return nil
}

func TestInterviewModule(t *testing.T) {
	suite.Run(t, new(ModuleTestSuite))
}

type ModuleTestSuite struct {
	suite.Suite
	db     *egorm.Component
	dao    dao.InterviewDAO
	server *egin.Component
}

func (s *ModuleTestSuite) SetupSuite() {
	s.db = testioc.InitDB()
	s.NoError(dao.InitTables(s.db))
	s.dao = dao.NewGORMInterviewDAO(s.db)

	m, err := interview.InitModule(s.db, testioc.InitCache(), testioc.InitMQ(),
		&fakeLLM{}, &fakeEmail{}, &fakeMarketplace{})
	s.NoError(err)

	econf.Set("server", map[string]any{"contextTimeout": "1s"})
	server := egin.Load("server").Build()
	// 从测试请求头里取调用方身份和角色
	server.Use(func(ctx *gin.Context) {
		uid, _ := strconv.ParseInt(ctx.GetHeader("X-Test-Uid"), 10, 64)
		ctx.Set(session.CtxSessionKey, session.NewMemorySession(session.Claims{
			Uid:  uid,
			Data: map[string]string{"role": ctx.GetHeader("X-Test-Role")},
		}))
	})
	m.Hdl.PrivateRoutes(server.Engine)
	s.server = server
}

func (s *ModuleTestSuite) TearDownTest() {
	s.NoError(s.db.Exec("TRUNCATE TABLE `ai_interviews`").Error)
}

func (s *ModuleTestSuite) post(uid int64, role string, path string, body any, recorder http.ResponseWriter) {
	req, err := http.NewRequest(http.MethodPost, path, iox.NewJSONReader(body))
	require.NoError(s.T(), err)
	req.Header.Set("content-type", "application/json")
	req.Header.Set("X-Test-Uid", strconv.FormatInt(uid, 10))
	req.Header.Set("X-Test-Role", role)
	s.server.ServeHTTP(recorder, req)
}

func (s *ModuleTestSuite) mustCreate() web.Interview {
	recorder := test.NewJSONResponseRecorder[web.Interview]()
	s.post(companyID, "company", "/interviews/create", web.CreateReq{
		TalentID: talentID,
		JobID:    jobID,
	}, recorder)
	require.Equal(s.T(), 200, recorder.Code)
	res := recorder.MustScan()
	require.Zero(s.T(), res.Code)
	return res.Data
}

func (s *ModuleTestSuite) mustStart(sn string) {
	recorder := test.NewJSONResponseRecorder[any]()
	s.post(talentID, "talent", "/interviews/start", web.StartReq{SN: sn}, recorder)
	require.Equal(s.T(), 200, recorder.Code)
	require.Zero(s.T(), recorder.MustScan().Code)
}

func (s *ModuleTestSuite) TestCreate() {
	t := s.T()
	created := s.mustCreate()
	require.Equal(t, domain.StatusPending.String(), created.Status)
	require.NotEmpty(t, created.SN)
	// 有效期是创建时间加 7 天
	wantExpires := time.Now().Add(7 * 24 * time.Hour).UnixMilli()
	require.InDelta(t, wantExpires, created.ExpiresAt, 2000)
	// 模板生成 4 道固定题加 2 道技能题
	require.Len(t, created.Questions, 6)

	// 重复的活跃三元组被拒绝
	recorder := test.NewJSONResponseRecorder[web.Interview]()
	s.post(companyID, "company", "/interviews/create", web.CreateReq{
		TalentID: talentID,
		JobID:    jobID,
	}, recorder)
	require.Equal(t, 517005, recorder.MustScan().Code)

	// 人才角色不能发起
	recorder = test.NewJSONResponseRecorder[web.Interview]()
	s.post(talentID, "talent", "/interviews/create", web.CreateReq{
		TalentID: talentID,
		JobID:    jobID,
	}, recorder)
	require.Equal(t, 517003, recorder.MustScan().Code)
}

func (s *ModuleTestSuite) TestStartAndDoubleStart() {
	t := s.T()
	created := s.mustCreate()
	s.mustStart(created.SN)

	entity, err := s.dao.FindBySN(context.Background(), created.SN)
	require.NoError(t, err)
	require.Equal(t, domain.StatusInProgress.String(), entity.Status)
	require.NotZero(t, entity.StartedAt)

	// 重复开始返回状态迁移错误
	recorder := test.NewJSONResponseRecorder[any]()
	s.post(talentID, "talent", "/interviews/start", web.StartReq{SN: created.SN}, recorder)
	require.Equal(t, 517004, recorder.MustScan().Code)
}

func (s *ModuleTestSuite) TestCompleteFlow() {
	t := s.T()
	created := s.mustCreate()
	s.mustStart(created.SN)

	confidences := []float64{80, 90, 70}
	for idx, c := range confidences {
		c := c
		recorder := test.NewJSONResponseRecorder[any]()
		s.post(talentID, "talent", "/interviews/response", web.SubmitResponseReq{
			SN: created.SN,
			Response: web.Response{
				QuestionIndex: idx,
				ResponseText:  "回答内容",
				Confidence:    &c,
			},
		}, recorder)
		require.Zero(t, recorder.MustScan().Code)
	}
	for i := 0; i < 6; i++ {
		recorder := test.NewJSONResponseRecorder[any]()
		s.post(talentID, "talent", "/interviews/event", web.AddMonitoringEventReq{
			SN:    created.SN,
			Event: web.MonitoringEvent{Type: "look_away"},
		}, recorder)
		require.Zero(t, recorder.MustScan().Code)
	}

	recorder := test.NewJSONResponseRecorder[web.Interview]()
	s.post(talentID, "talent", "/interviews/complete", web.CompleteReq{SN: created.SN}, recorder)
	res := recorder.MustScan()
	require.Zero(t, res.Code)
	require.Equal(t, domain.StatusCompleted.String(), res.Data.Status)
	require.NotNil(t, res.Data.Analysis)
	require.Equal(t, 80, res.Data.Analysis.OverallScore)
	require.Equal(t, 6, res.Data.Analysis.SuspiciousEventCount)
	require.Equal(t, "medium", res.Data.Analysis.CheatingRiskLevel)
	require.Equal(t, []string{"6 suspicious monitoring events detected"},
		res.Data.Analysis.CheatingIndicators)

	// 已完成之后不能再提交回答
	respRecorder := test.NewJSONResponseRecorder[any]()
	s.post(talentID, "talent", "/interviews/response", web.SubmitResponseReq{
		SN:       created.SN,
		Response: web.Response{ResponseText: "补交"},
	}, respRecorder)
	require.Equal(t, 517004, respRecorder.MustScan().Code)
}

func (s *ModuleTestSuite) TestCancel() {
	t := s.T()
	created := s.mustCreate()
	s.mustStart(created.SN)

	// 企业方取消进行中的面试
	recorder := test.NewJSONResponseRecorder[any]()
	s.post(companyID, "company", "/interviews/cancel", web.CancelReq{SN: created.SN}, recorder)
	require.Zero(t, recorder.MustScan().Code)

	entity, err := s.dao.FindBySN(context.Background(), created.SN)
	require.NoError(t, err)
	require.Equal(t, domain.StatusCancelled.String(), entity.Status)

	// 取消后人才不能再提交回答
	respRecorder := test.NewJSONResponseRecorder[any]()
	s.post(talentID, "talent", "/interviews/response", web.SubmitResponseReq{
		SN:       created.SN,
		Response: web.Response{ResponseText: "迟到的回答"},
	}, respRecorder)
	require.Equal(t, 517004, respRecorder.MustScan().Code)
}

func (s *ModuleTestSuite) TestTalentCannotWriteFeedback() {
	t := s.T()
	created := s.mustCreate()
	recorder := test.NewJSONResponseRecorder[any]()
	s.post(talentID, "talent", "/interviews/feedback", web.AddFeedbackReq{
		SN:       created.SN,
		Feedback: "我觉得我答得很好",
	}, recorder)
	require.Equal(t, 517003, recorder.MustScan().Code)

	// 企业方可以
	recorder = test.NewJSONResponseRecorder[any]()
	s.post(companyID, "company", "/interviews/feedback", web.AddFeedbackReq{
		SN:       created.SN,
		Feedback: "候选人基础扎实",
	}, recorder)
	require.Zero(t, recorder.MustScan().Code)
}

func (s *ModuleTestSuite) TestDetailVisibility() {
	t := s.T()
	created := s.mustCreate()
	s.mustStart(created.SN)
	recorder := test.NewJSONResponseRecorder[any]()
	s.post(talentID, "talent", "/interviews/event", web.AddMonitoringEventReq{
		SN:    created.SN,
		Event: web.MonitoringEvent{Type: "multiple_faces"},
	}, recorder)
	require.Zero(t, recorder.MustScan().Code)

	// 人才看不到监考事件
	talentRecorder := test.NewJSONResponseRecorder[web.Interview]()
	s.post(talentID, "talent", "/interviews/detail", web.DetailReq{SN: created.SN}, talentRecorder)
	talentView := talentRecorder.MustScan()
	require.Zero(t, talentView.Code)
	require.Empty(t, talentView.Data.MonitoringEvents)
	require.False(t, talentView.Data.ViewedByCompany)

	// 企业方首次查看打已读标记并能看到监考事件
	companyRecorder := test.NewJSONResponseRecorder[web.Interview]()
	s.post(companyID, "company", "/interviews/detail", web.DetailReq{SN: created.SN}, companyRecorder)
	companyView := companyRecorder.MustScan()
	require.Zero(t, companyView.Code)
	require.Len(t, companyView.Data.MonitoringEvents, 1)
	require.True(t, companyView.Data.ViewedByCompany)
	firstViewedAt := companyView.Data.ViewedAt
	require.NotZero(t, firstViewedAt)

	// 第二次查看不更新已读时间
	companyRecorder = test.NewJSONResponseRecorder[web.Interview]()
	s.post(companyID, "company", "/interviews/detail", web.DetailReq{SN: created.SN}, companyRecorder)
	require.Equal(t, firstViewedAt, companyRecorder.MustScan().Data.ViewedAt)

	// 其他企业查不到这条记录
	otherRecorder := test.NewJSONResponseRecorder[web.Interview]()
	s.post(int64(999), "company", "/interviews/detail", web.DetailReq{SN: created.SN}, otherRecorder)
	require.Equal(t, 517002, otherRecorder.MustScan().Code)
}

func (s *ModuleTestSuite) TestList() {
	t := s.T()
	created := s.mustCreate()
	recorder := test.NewJSONResponseRecorder[web.ListResp]()
	s.post(companyID, "company", "/interviews/list", web.ListReq{Page: 1, Limit: 10}, recorder)
	res := recorder.MustScan()
	require.Zero(t, res.Code)
	require.Equal(t, int64(1), res.Data.Total)
	require.Equal(t, int64(1), res.Data.TotalPages)
	require.Len(t, res.Data.Interviews, 1)
	require.Equal(t, created.SN, res.Data.Interviews[0].SN)
	// 列表不含题目和回答
	require.Empty(t, res.Data.Interviews[0].Questions)
	require.Empty(t, res.Data.Interviews[0].Responses)
}

// TestStartCASConflict 直接在 DAO 层验证条件更新语义
func (s *ModuleTestSuite) TestStartCASConflict() {
	t := s.T()
	created := s.mustCreate()
	now := time.Now().UnixMilli()
	require.NoError(t, s.dao.Start(context.Background(), created.SN, now))
	err := s.dao.Start(context.Background(), created.SN, now)
	require.ErrorIs(t, err, dao.ErrStatusConflict)
}
