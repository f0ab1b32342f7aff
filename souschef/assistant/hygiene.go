package assistant

import (
	"regexp"
	"strings"
)

// ResponseHygiene normalizes raw backend output before it reaches the user
// or the conversation history: role-prefix artifacts are stripped, runaway
// blank lines collapsed, and the total size clamped.
type ResponseHygiene struct {
	maxOutputSize int
	rolePrefixes  []string
	tailPattern   *regexp.Regexp
}

// NewResponseHygiene creates a cleaner with the given output size cap in
// runes; zero means no cap.
func NewResponseHygiene(maxOutputSize int) *ResponseHygiene {
	return &ResponseHygiene{
		maxOutputSize: maxOutputSize,
		rolePrefixes:  []string{"Assistant:", "AI:"},
		// A dangling turn-boundary line the stop sequences let through.
		tailPattern: regexp.MustCompile(`(?m)^\s*(User|Human):\s*$`),
	}
}

// Clean applies all hygiene steps in order.
func (h *ResponseHygiene) Clean(output string) string {
	s := strings.TrimSpace(output)

	for _, prefix := range h.rolePrefixes {
		s = strings.TrimSpace(strings.TrimPrefix(s, prefix))
	}

	if loc := h.tailPattern.FindStringIndex(s); loc != nil {
		s = strings.TrimSpace(s[:loc[0]])
	}

	for strings.Contains(s, "\n\n\n") {
		s = strings.ReplaceAll(s, "\n\n\n", "\n\n")
	}

	if h.maxOutputSize > 0 {
		if runes := []rune(s); len(runes) > h.maxOutputSize {
			s = strings.TrimSpace(string(runes[:h.maxOutputSize]))
		}
	}
	return s
}
