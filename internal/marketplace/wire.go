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

package marketplace

import (
	"net/http"
	"time"

	"github.com/ecodeclub/aimarket/internal/marketplace/internal/service"
	"github.com/gotomicro/ego/core/econf"
)

// InitService 从配置初始化人才市场网关
func InitService() Service {
	type Config struct {
		BaseURL     string `yaml:"baseUrl"`
		Timeout     string `yaml:"timeout"`
		Interval    string `yaml:"interval"`
		MaxInterval string `yaml:"maxInterval"`
		MaxRetries  int    `yaml:"maxRetries"`
	}
	var cfg Config
	err := econf.UnmarshalKey("marketplace", &cfg)
	if err != nil {
		panic(err)
	}
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		panic(err)
	}
	interval, err := time.ParseDuration(cfg.Interval)
	if err != nil {
		panic(err)
	}
	maxInterval, err := time.ParseDuration(cfg.MaxInterval)
	if err != nil {
		panic(err)
	}
	return service.NewHTTPGateway(cfg.BaseURL,
		&http.Client{Timeout: timeout},
		interval, maxInterval, cfg.MaxRetries)
}
