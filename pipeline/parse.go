package pipeline

import (
	"errors"
	"strings"
)

// Model responses are plain text with fixed section headers. The parsers
// below split on those headers and collect "- " bullets, tolerating extra
// whitespace and markdown bold around headers.

func splitSections(text string, headers []string) map[string]string {
	sections := make(map[string]string)
	current := ""
	var buf strings.Builder

	save := func() {
		if current != "" {
			sections[current] = strings.TrimSpace(buf.String())
		}
		buf.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.Trim(strings.TrimSpace(line), "*")
		upper := strings.ToUpper(trimmed)

		matched := false
		for _, h := range headers {
			if strings.HasPrefix(upper, h+":") || upper == h {
				save()
				current = h
				// Keep any content following the header on the same line.
				if idx := strings.Index(upper, ":"); idx >= 0 && idx+1 < len(trimmed) {
					rest := strings.TrimSpace(trimmed[idx+1:])
					if rest != "" {
						buf.WriteString(rest)
						buf.WriteString("\n")
					}
				}
				matched = true
				break
			}
		}
		if !matched && current != "" {
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	}
	save()
	return sections
}

func extractBullets(text string) []string {
	var bullets []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "- "):
			bullets = append(bullets, strings.TrimSpace(strings.TrimPrefix(trimmed, "- ")))
		case strings.HasPrefix(trimmed, "* "):
			bullets = append(bullets, strings.TrimSpace(strings.TrimPrefix(trimmed, "* ")))
		case trimmed != "":
			bullets = append(bullets, trimmed)
		}
	}
	return bullets
}

// ParseAnalysis parses the analyze-stage response. It fails when the response
// carries no key points, since every later stage builds on them.
func ParseAnalysis(raw string) (AnalysisResult, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return AnalysisResult{}, errors.New("model returned empty analysis")
	}

	sections := splitSections(text, []string{"MAIN TOPIC", "KEY POINTS", "TONE", "SUMMARY"})
	result := AnalysisResult{
		Topic:       firstLine(sections["MAIN TOPIC"]),
		KeyPoints:   extractBullets(sections["KEY POINTS"]),
		ToneSignals: extractBullets(sections["TONE"]),
		Summary:     sections["SUMMARY"],
	}
	if len(result.KeyPoints) == 0 {
		return AnalysisResult{}, errors.New("analysis response has no key points")
	}
	return result, nil
}

// ParseDraft parses the draft-stage response. The body is mandatory; a
// missing title falls back to the first body line.
func ParseDraft(raw string) (DraftContent, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return DraftContent{}, errors.New("model returned empty draft")
	}

	sections := splitSections(text, []string{"TITLE", "BODY"})
	draft := DraftContent{
		SuggestedTitle: firstLine(sections["TITLE"]),
		Body:           sections["BODY"],
	}
	if draft.Body == "" {
		// The model skipped the headers; treat the whole response as body.
		if len(sections) == 0 {
			draft.Body = text
		} else {
			return DraftContent{}, errors.New("draft response has no body")
		}
	}
	if draft.SuggestedTitle == "" {
		draft.SuggestedTitle = firstLine(draft.Body)
	}
	return draft, nil
}

// ParseFinal validates the optimize-stage response.
func ParseFinal(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", errors.New("model returned empty content")
	}
	return text, nil
}

func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			return t
		}
	}
	return ""
}
