package llm

import (
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"strings"
)

// Translate 把 text 从 sourceLang 翻译到 targetLang，只输出译文。
// 空译文按失败处理，调用方不会落脏行
func (s *openaiClient) Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error) {
	userPrompt := fmt.Sprintf("Translate the following text from %s to %s. Output only the translated text.\n\n%s",
		sourceLang, targetLang, text)

	resp, err := s.fetchModel(ctx, s.translationPrompt, userPrompt, 0.1)
	if err != nil {
		log.ErrorContext(ctx, "翻译-AI大模型请求失败", "err", err)
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("翻译-AI大模型返回数据为空")
	}

	output := strings.TrimSpace(resp.Choices[0].Content)
	if output == "" {
		return "", errors.New("翻译-AI大模型返回空译文")
	}

	return output, nil
}
