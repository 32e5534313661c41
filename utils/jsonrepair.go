package utils

import "strings"

// CleanJSONString strips markdown code-fence markers that model-generated
// payloads sometimes arrive wrapped in.
func CleanJSONString(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimSpace(s[len("```json"):])
	}
	if strings.HasPrefix(s, "```") {
		s = strings.TrimSpace(s[3:])
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(s[:len(s)-3])
	}
	return s
}

// BalanceBraces appends closing braces for any left unmatched. Truncated
// model output tends to drop trailing closers, never openers.
func BalanceBraces(s string) string {
	open := strings.Count(s, "{")
	closed := strings.Count(s, "}")
	if open > closed {
		s += strings.Repeat("}", open-closed)
	}
	return s
}

// RepairJSON is the bounded repair pass used when a strict parse of a
// service payload fails.
func RepairJSON(s string) string {
	return BalanceBraces(CleanJSONString(s))
}
