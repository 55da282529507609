//go:build wireinject

package ioc

import (
	"github.com/ecodeclub/aimarket/internal/ai"
	"github.com/ecodeclub/aimarket/internal/interview"
	"github.com/ecodeclub/aimarket/internal/marketplace"
	"github.com/google/wire"
)

var BaseSet = wire.NewSet(InitDB, InitRedis, InitCache, InitMQ)

func InitApp() (*App, error) {
	wire.Build(wire.Struct(new(App), "*"),
		BaseSet,
		ai.InitLLMService,
		InitEmailService,
		marketplace.InitService,
		interview.InitModule,
		wire.FieldsOf(new(*interview.Module), "Hdl", "ExpireJob"),
		InitSession,
		initGinxServer,
		initCronJobs)
	return new(App), nil
}
