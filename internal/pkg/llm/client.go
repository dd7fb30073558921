package llm

import (
	"context"
	"errors"
)

// ErrNotConfigured AI能力未配置时返回的哨兵错误，调用方据此降级
var ErrNotConfigured = errors.New("AI能力未配置")

// ModerationResult 内容安全分类结果
type ModerationResult struct {
	RiskScore int      `json:"risk_score"` // 0-100
	Labels    []string `json:"labels"`
	Decision  string   `json:"decision"`
	Reason    string   `json:"reason"`
}

// Client 外部AI能力的边界，审核与翻译均为黑盒调用
type Client interface {
	Moderate(ctx context.Context, title, content string) (*ModerationResult, error)
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
	Model() string
}
