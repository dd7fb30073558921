// Package flatten 将富文本内容压平为分类模型可读的纯文本。
// 分类模型只看文本不看标记，压平必须保持块的原始顺序。
package flatten

import (
	"strings"

	"github.com/goccy/go-json"
)

// block 编辑器富文本块，未知类型只取其文本字段
type block struct {
	Type  string   `json:"type"`
	Text  string   `json:"text"`
	Items []string `json:"items"`
}

// Flatten 把内容压平为单个纯文本字符串。
// 内容若是块数组的 JSON 则按块顺序拼接文本，否则按纯文本处理；
// 任何畸形输入都回退到原始文本，绝不报错
func Flatten(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "[") {
		if text, ok := flattenBlocks(trimmed); ok {
			return text
		}
	}

	return collapseWhitespace(trimmed)
}

func flattenBlocks(raw string) (string, bool) {
	var blocks []block
	if err := json.Unmarshal([]byte(raw), &blocks); err != nil {
		return "", false
	}

	var parts []string
	for _, b := range blocks {
		if t := strings.TrimSpace(b.Text); t != "" {
			parts = append(parts, collapseWhitespace(t))
		}
		for _, item := range b.Items {
			if t := strings.TrimSpace(item); t != "" {
				parts = append(parts, collapseWhitespace(t))
			}
		}
	}

	return strings.Join(parts, "\n"), true
}

// collapseWhitespace 把连续空白压成单个空格，保留换行作为段落分隔
func collapseWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		out = append(out, strings.Join(fields, " "))
	}
	return strings.Join(out, "\n")
}
