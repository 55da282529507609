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

package interview

import (
	"math/rand"
	"sync"
	"time"

	"github.com/ecodeclub/aimarket/internal/ai"
	"github.com/ecodeclub/aimarket/internal/email"
	"github.com/ecodeclub/aimarket/internal/interview/internal/event"
	"github.com/ecodeclub/aimarket/internal/interview/internal/job"
	"github.com/ecodeclub/aimarket/internal/interview/internal/repository"
	"github.com/ecodeclub/aimarket/internal/interview/internal/repository/dao"
	"github.com/ecodeclub/aimarket/internal/interview/internal/service"
	"github.com/ecodeclub/aimarket/internal/marketplace"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/econf"
)

var initOnce sync.Once

func initDAO(db *egorm.Component) dao.InterviewDAO {
	initOnce.Do(func() {
		err := dao.InitTables(db)
		if err != nil {
			panic(err)
		}
	})
	return dao.NewGORMInterviewDAO(db)
}

func initQuestionGenerator(llmSvc ai.LLMService) service.QuestionGenerator {
	return service.NewLLMQuestionGenerator(llmSvc, service.NewTemplateQuestionGenerator())
}

func initScoringStrategy(llmSvc ai.LLMService) service.ScoringStrategy {
	narrative := service.NewLLMNarrativeGenerator(llmSvc, service.NewStaticNarrativeGenerator())
	return service.NewHeuristicScoringStrategy(
		rand.New(rand.NewSource(time.Now().UnixNano())), narrative)
}

func initStatusEventProducer(q mq.MQ) *event.InterviewStatusEventProducer {
	producer, err := q.Producer(event.InterviewStatusEvent{}.Topic())
	if err != nil {
		panic(err)
	}
	return event.NewInterviewStatusEventProducer(producer)
}

func initService(repo repository.InterviewRepository,
	marketplaceSvc marketplace.Service,
	questionGen service.QuestionGenerator,
	scoring service.ScoringStrategy,
	producer *event.InterviewStatusEventProducer,
	emailSvc email.Service) service.InterviewService {
	return service.NewInterviewService(repo, marketplaceSvc, questionGen, scoring, producer, emailSvc)
}

func initExpireJob(svc service.InterviewService) *job.ExpireInterviewsJob {
	type Config struct {
		Limit   int    `yaml:"limit"`
		Timeout string `yaml:"timeout"`
	}
	cfg := Config{Limit: 100, Timeout: "1m"}
	if econf.Get("interview.expireJob") != nil {
		if err := econf.UnmarshalKey("interview.expireJob", &cfg); err != nil {
			panic(err)
		}
	}
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		panic(err)
	}
	return job.NewExpireInterviewsJob(svc, cfg.Limit, timeout)
}
