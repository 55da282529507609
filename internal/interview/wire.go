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

//go:build wireinject

package interview

import (
	"github.com/ecodeclub/aimarket/internal/ai"
	"github.com/ecodeclub/aimarket/internal/email"
	"github.com/ecodeclub/aimarket/internal/interview/internal/repository"
	"github.com/ecodeclub/aimarket/internal/interview/internal/repository/cache"
	"github.com/ecodeclub/aimarket/internal/interview/internal/web"
	"github.com/ecodeclub/aimarket/internal/marketplace"
	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

func InitModule(db *egorm.Component,
	ec ecache.Cache,
	q mq.MQ,
	llmSvc ai.LLMService,
	emailSvc email.Service,
	marketplaceSvc marketplace.Service) (*Module, error) {
	wire.Build(
		initDAO,
		cache.NewInterviewECache,
		repository.NewInterviewRepository,
		initQuestionGenerator,
		initScoringStrategy,
		initStatusEventProducer,
		initService,
		initExpireJob,
		web.NewHandler,
		wire.Struct(new(Module), "*"),
	)
	return nil, nil
}
