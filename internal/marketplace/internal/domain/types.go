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

package domain

// Talent 人才市场里的候选人档案
type Talent struct {
	ID    int64
	Name  string
	Email string
}

// Job 企业发布的职位
type Job struct {
	ID        int64
	CompanyID int64
	Title     string
	// 职位要求的技能列表
	Skills []string
}

// Company 企业账号信息
type Company struct {
	ID    int64
	Name  string
	Email string
}
