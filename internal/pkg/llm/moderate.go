package llm

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"

	"github.com/goccy/go-json"
)

// Moderate 调用分类模型对 (title, content) 打分。
// 返回的 risk_score 被钳制到 [0,100]；返回内容无法解析时视为调用失败
func (s *openaiClient) Moderate(ctx context.Context, title, content string) (*ModerationResult, error) {
	userPrompt := fmt.Sprintf("Title: %s\nContent: %s", title, content)

	resp, err := s.fetchModel(ctx, s.moderationPrompt, userPrompt, 0.1)
	if err != nil {
		log.ErrorContext(ctx, "内容审核-AI大模型请求失败", "err", err)
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, errors.New("内容审核-AI大模型返回数据为空")
	}

	result := &ModerationResult{}
	cleaned := resp.Choices[0].Content
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	if err = json.Unmarshal([]byte(cleaned), result); err != nil {
		log.ErrorContext(ctx, "内容审核-AI大模型返回数据解析失败", "err", err)
		return nil, err
	}

	if result.RiskScore < 0 {
		result.RiskScore = 0
	}
	if result.RiskScore > 100 {
		result.RiskScore = 100
	}

	return result, nil
}
