package assistant

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// suggestionMarker labels the machine-readable tail of a model reply.
// It is an informal convention the model follows best-effort, so the
// parser must never fail on a malformed tail.
const suggestionMarker = "SUGGESTED_QUESTIONS:"

// parseSuggestions separates prose content from the suggested-questions
// block of a raw model reply. When expect is false the text is returned
// verbatim. The split happens at the first marker occurrence only; the
// remainder is parsed as a JSON array of strings. A malformed remainder
// is logged and degrades to no suggestions; the prose content already
// extracted is always kept.
func parseSuggestions(log *slog.Logger, raw string, expect bool) (string, []string) {
	if !expect {
		return raw, nil
	}
	before, after, found := strings.Cut(raw, suggestionMarker)
	if !found {
		return raw, nil
	}
	content := strings.TrimSpace(before)
	var questions []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(after)), &questions); err != nil {
		log.Warn("failed to parse suggested questions", "err", err)
		return content, nil
	}
	return content, questions
}
