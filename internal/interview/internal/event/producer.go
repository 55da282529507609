package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ecodeclub/mq-api"
)

type InterviewStatusEventProducer struct {
	producer mq.Producer
}

func NewInterviewStatusEventProducer(producer mq.Producer) *InterviewStatusEventProducer {
	return &InterviewStatusEventProducer{producer: producer}
}

func (p *InterviewStatusEventProducer) Produce(ctx context.Context, evt InterviewStatusEvent) error {
	data, err := json.Marshal(&evt)
	if err != nil {
		return fmt.Errorf("序列化失败: %w", err)
	}
	_, err = p.producer.Produce(ctx, &mq.Message{Value: data})
	if err != nil {
		return fmt.Errorf("发送面试状态变更消息失败: %w", err)
	}
	return nil
}
