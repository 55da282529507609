package event

// InterviewStatusEvent 面试状态变更事件
// 状态每发生一次有效迁移就发送一条
type InterviewStatusEvent struct {
	SN        string `json:"sn"`
	CompanyID int64  `json:"companyId"`
	TalentID  int64  `json:"talentId"`
	JobID     int64  `json:"jobId"`
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
}

func (InterviewStatusEvent) Topic() string {
	return "interview_status_events"
}
