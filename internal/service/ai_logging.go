package service

import (
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

const maxAILogSnippetRunes = 1024

// logAIExchange 用于输出 AI 请求与响应的关键信息，方便排查模型行为。
func logAIExchange(logger logrus.FieldLogger, op, phase, content string) {
	if logger == nil {
		return
	}
	entry := logger.WithFields(logrus.Fields{"ai_op": op, "phase": phase})

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		entry.Debug("<empty>")
		return
	}

	runeCount := utf8.RuneCountInString(trimmed)
	snippet := trimmed
	if runeCount > maxAILogSnippetRunes {
		snippet = truncateRunes(trimmed, maxAILogSnippetRunes) + "…(truncated)"
	}
	entry.WithField("runes", runeCount).Debug(snippet)
}

// truncateRunes cuts s to at most limit runes.
func truncateRunes(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
