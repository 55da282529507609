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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanStart(t *testing.T) {
	testCases := []struct {
		name    string
		status  Status
		wantRes bool
	}{
		{
			name:    "待开始可以开始",
			status:  StatusPending,
			wantRes: true,
		},
		{
			name:    "已预约可以开始",
			status:  StatusScheduled,
			wantRes: true,
		},
		{
			name:    "进行中不能重复开始",
			status:  StatusInProgress,
			wantRes: false,
		},
		{
			name:    "已完成不能开始",
			status:  StatusCompleted,
			wantRes: false,
		},
		{
			name:    "已取消不能开始",
			status:  StatusCancelled,
			wantRes: false,
		},
		{
			name:    "已过期不能开始",
			status:  StatusExpired,
			wantRes: false,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantRes, tc.status.CanStart())
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusScheduled.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
	// 过期记录仍然可以被取消，不算终态
	assert.False(t, StatusExpired.IsTerminal())
}

func TestStatus_IsActive(t *testing.T) {
	// 活跃状态会阻止同一三元组再次发起面试
	active := []Status{StatusPending, StatusScheduled, StatusInProgress}
	for _, s := range active {
		assert.True(t, s.IsActive(), s.String())
	}
	inactive := []Status{StatusCompleted, StatusCancelled, StatusExpired}
	for _, s := range inactive {
		assert.False(t, s.IsActive(), s.String())
	}
}

func TestRiskLevelOf(t *testing.T) {
	testCases := []struct {
		name    string
		count   int
		wantRes RiskLevel
	}{
		{
			name:    "无可疑事件",
			count:   0,
			wantRes: RiskLow,
		},
		{
			name:    "边界值5仍为低风险",
			count:   5,
			wantRes: RiskLow,
		},
		{
			name:    "边界值6进入中风险",
			count:   6,
			wantRes: RiskMedium,
		},
		{
			name:    "边界值10仍为中风险",
			count:   10,
			wantRes: RiskMedium,
		},
		{
			name:    "边界值11进入高风险",
			count:   11,
			wantRes: RiskHigh,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantRes, RiskLevelOf(tc.count))
		})
	}
}

func TestEventType_IsSuspicious(t *testing.T) {
	assert.False(t, EventNormal.IsSuspicious())
	for _, typ := range []EventType{EventLookAway, EventMultipleFaces, EventReading, EventFaceNotVisible} {
		assert.True(t, typ.IsSuspicious(), string(typ))
	}
}
