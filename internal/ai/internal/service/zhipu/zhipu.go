package zhipu

import (
	"context"

	"github.com/ecodeclub/aimarket/internal/ai/internal/domain"
	"github.com/yankeguo/zhipu"
)

// 智谱

type LLMService struct {
	client *zhipu.Client
	model  string
}

func NewLLMService(apikey, model string) (*LLMService, error) {
	client, err := zhipu.NewClient(zhipu.WithAPIKey(apikey))
	if err != nil {
		return nil, err
	}
	if model == "" {
		model = "glm-4"
	}
	return &LLMService{
		client: client,
		model:  model,
	}, nil
}

func (s *LLMService) Invoke(ctx context.Context, req domain.LLMRequest) (domain.LLMResponse, error) {
	resp, err := s.client.ChatCompletion(s.model).
		AddMessage(zhipu.ChatCompletionMessage{
			Role:    "user",
			Content: req.Prompt,
		}).Do(ctx)
	if err != nil {
		return domain.LLMResponse{}, err
	}
	var answer string
	if len(resp.Choices) > 0 {
		answer = resp.Choices[0].Message.Content
	}
	return domain.LLMResponse{
		Tokens: resp.Usage.TotalTokens,
		Answer: answer,
	}, nil
}
