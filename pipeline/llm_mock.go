package pipeline

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// MockLLM is a deterministic stand-in that answers each stage in the expected
// response format, reusing only words from the prompt's source material. It
// lets the pipeline run locally without an API key.
type MockLLM struct {
	// FailStage, when set, makes Complete fail at that stage.
	FailStage string
}

func (m MockLLM) Complete(_ context.Context, prompt Prompt) (string, error) {
	if m.FailStage != "" && m.FailStage == prompt.Stage {
		return "", fmt.Errorf("mock llm: simulated %s failure", prompt.Stage)
	}
	switch prompt.Stage {
	case StageAnalyze:
		return m.analyze(prompt), nil
	case StageDraft:
		return m.draft(prompt), nil
	case StageOptimize:
		return m.optimize(prompt), nil
	default:
		return "", fmt.Errorf("mock llm: unknown stage %q", prompt.Stage)
	}
}

func (m MockLLM) analyze(prompt Prompt) string {
	src := sourceFrom(prompt.User)
	var sb strings.Builder

	sb.WriteString("MAIN TOPIC:\n")
	sb.WriteString(firstWords(src, 8))
	sb.WriteString("\n\nKEY POINTS:\n")
	sentences := splitSentences(src)
	if len(sentences) == 0 {
		sentences = []string{src}
	}
	for i, s := range sentences {
		if i == 5 {
			break
		}
		sb.WriteString("- " + firstWords(s, 12) + "\n")
	}
	sb.WriteString("\nTONE:\n- informative\n- engaging\n\nSUMMARY:\n")
	sb.WriteString(firstWords(src, 20))
	sb.WriteString("\n")
	return sb.String()
}

func (m MockLLM) draft(prompt Prompt) string {
	src := sourceFrom(prompt.User)
	return "TITLE:\n" + firstWords(src, 6) + "\n\nBODY:\n" + src + "\n"
}

var (
	maxCharsRe = regexp.MustCompile(`Maximum length: (\d+) characters`)
	hashtagsRe = regexp.MustCompile(`Include (\d+) to (\d+) relevant hashtags`)
)

func (m MockLLM) optimize(prompt Prompt) string {
	src := sourceFrom(prompt.User)
	out := between(prompt.User, "DRAFT:\n", "\n\nREFERENCE")
	if out == "" {
		out = src
	}

	maxChars := 0
	if mm := maxCharsRe.FindStringSubmatch(prompt.User); mm != nil {
		fmt.Sscanf(mm[1], "%d", &maxChars)
	}

	var tagBlock string
	if mm := hashtagsRe.FindStringSubmatch(prompt.User); mm != nil {
		want := 0
		fmt.Sscanf(mm[1], "%d", &want)
		if tags := hashtagsFrom(src, want); len(tags) > 0 {
			tagBlock = strings.Join(tags, " ")
		}
	}

	if maxChars > 0 {
		budget := maxChars
		if tagBlock != "" {
			budget -= len(tagBlock) + 2
		}
		if budget < 0 {
			budget = 0
		}
		if len(out) > budget {
			out = strings.TrimSpace(out[:budget])
		}
	}
	if tagBlock != "" {
		out = strings.TrimSpace(out) + "\n\n" + tagBlock
	}
	return out
}

// sourceFrom pulls the transcript text back out of a stage prompt.
func sourceFrom(user string) string {
	const marker = "Transcript (source:"
	idx := strings.Index(user, marker)
	if idx < 0 {
		return strings.TrimSpace(user)
	}
	rest := user[idx:]
	if nl := strings.Index(rest, "\n"); nl >= 0 {
		rest = rest[nl+1:]
	}
	for _, stop := range []string{"\n\nExtract", "\n\nAnswer", "\n\nOutput"} {
		if i := strings.Index(rest, stop); i >= 0 {
			rest = rest[:i]
		}
	}
	return strings.TrimSpace(rest)
}

func between(s, start, end string) string {
	i := strings.Index(s, start)
	if i < 0 {
		return ""
	}
	rest := s[i+len(start):]
	if j := strings.Index(rest, end); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest)
}

func splitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})
	var out []string
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func firstWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}

func hashtagsFrom(text string, n int) []string {
	if n < 1 {
		n = 1
	}
	seen := make(map[string]struct{})
	var tags []string
	for _, term := range significantTerms(text) {
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		tags = append(tags, "#"+term)
		if len(tags) == n {
			break
		}
	}
	return tags
}
