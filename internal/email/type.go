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

package email

import "context"

// Service 邮件发送服务
type Service interface {
	SendMail(ctx context.Context, mail Mail) error
}

// Mail 一封待发送的邮件
type Mail struct {
	// 发件人昵称
	From string
	// 收件人邮箱
	To string
	// 邮件主题
	Subject string
	// HTML 格式的正文
	Body []byte
}
