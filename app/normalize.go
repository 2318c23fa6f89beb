package app

import "strings"

const (
	maxNameLen = 80
	maxMsgLen  = 2000
)

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

func normalizeName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}
	return truncateRunes(name, maxNameLen)
}

func normalizeMessage(raw string) string {
	return truncateRunes(strings.TrimSpace(raw), maxMsgLen)
}
