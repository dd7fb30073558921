package llm

import (
	"BridgeUS/internal/api/config"
	"context"
	log "log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

type openaiClient struct {
	llm               llms.Model
	model             string
	moderationPrompt  string
	translationPrompt string
	dailyLimit        int64
}

// NewClient 根据配置构造AI客户端；未启用时返回 disabled 客户端，
// 所有调用返回 ErrNotConfigured，由上层按降级策略处理
func NewClient(cfg config.LLMConfig) (Client, error) {
	if !cfg.Enabled || cfg.ApiKey == "" {
		log.Warn("LLM disabled, moderation and translation will degrade")
		return &disabledClient{}, nil
	}

	llm, err := openai.New(
		openai.WithModel(cfg.TextModel),
		openai.WithToken(cfg.ApiKey),
		openai.WithBaseURL(cfg.URL),
	)
	if err != nil {
		log.Error("AI大模型初始化失败", "err", err)
		return nil, err
	}

	return &openaiClient{
		llm:               llm,
		model:             cfg.TextModel,
		moderationPrompt:  readPrompt(cfg.PromptsPath.Moderation),
		translationPrompt: readPrompt(cfg.PromptsPath.Translation),
		dailyLimit:        cfg.DailyLimit,
	}, nil
}

func (s *openaiClient) Model() string {
	return s.model
}

type disabledClient struct{}

func (s *disabledClient) Moderate(_ context.Context, _, _ string) (*ModerationResult, error) {
	return nil, ErrNotConfigured
}

func (s *disabledClient) Translate(_ context.Context, _, _, _ string) (string, error) {
	return "", ErrNotConfigured
}

func (s *disabledClient) Model() string {
	return ""
}
