// Package pipeline runs the three-stage content generation workflow:
// analyze the video material, draft platform-agnostic content, then optimize
// it for the selected platform and content type. Stages run strictly in
// order, each consuming the previous stage's output, and any stage failure
// aborts the run with no partial output.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Gouranga-GH/yt-to-other-sm/platform"
	"github.com/Gouranga-GH/yt-to-other-sm/youtube"
)

// DefaultMinSourceCoverage is the default threshold for the post-run source
// coverage check. Deliberately permissive: it catches content that drifted
// wholesale from the source, not individual paraphrases.
const DefaultMinSourceCoverage = 0.3

// Pipeline orchestrates the stages against one LLM client.
type Pipeline struct {
	llm         LLMClient
	logger      *log.Logger
	minCoverage float64
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithMinSourceCoverage sets the minimum fraction of final-content vocabulary
// that must occur in the source material. Zero disables the check.
func WithMinSourceCoverage(min float64) Option {
	return func(p *Pipeline) { p.minCoverage = min }
}

// New builds a Pipeline. The LLM client is required.
func New(llm LLMClient, opts ...Option) (*Pipeline, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	p := &Pipeline{
		llm:         llm,
		logger:      log.Default(),
		minCoverage: DefaultMinSourceCoverage,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run executes the full workflow for one video. It returns *platform.ConfigError
// for an unsupported selection and *GenerationError when a stage fails.
func (p *Pipeline) Run(ctx context.Context, video youtube.Video, sel platform.Selection) (FinalContent, error) {
	profile, err := platform.Lookup(sel.Platform, sel.ContentType)
	if err != nil {
		return FinalContent{}, err
	}
	p.logger.Printf("[pipeline] starting run for %q (%s/%s)", video.Title, sel.Platform, sel.ContentType)

	analysis, err := p.analyze(ctx, video, sel)
	if err != nil {
		return FinalContent{}, err
	}
	p.logger.Printf("[pipeline] stage %s done: %d key points", StageAnalyze, len(analysis.KeyPoints))

	draft, err := p.draft(ctx, video, sel, analysis)
	if err != nil {
		return FinalContent{}, err
	}
	p.logger.Printf("[pipeline] stage %s done: %d chars", StageDraft, len(draft.Body))

	text, err := p.optimize(ctx, video, profile, draft)
	if err != nil {
		return FinalContent{}, err
	}
	p.logger.Printf("[pipeline] stage %s done: %d chars", StageOptimize, len(text))

	if p.minCoverage > 0 {
		source := video.Transcript + "\n" + video.Description
		if cov := SourceCoverage(text, source); cov < p.minCoverage {
			return FinalContent{}, stageErr(StageValidate,
				fmt.Errorf("source coverage %.2f below minimum %.2f", cov, p.minCoverage))
		}
	}

	return FinalContent{
		FormattedText: text,
		Platform:      sel.Platform,
		ContentType:   sel.ContentType,
	}, nil
}

func (p *Pipeline) analyze(ctx context.Context, video youtube.Video, sel platform.Selection) (AnalysisResult, error) {
	raw, err := p.llm.Complete(ctx, BuildAnalyzePrompt(video, sel))
	if err != nil {
		return AnalysisResult{}, stageErr(StageAnalyze, err)
	}
	analysis, err := ParseAnalysis(raw)
	if err != nil {
		return AnalysisResult{}, stageErr(StageAnalyze, err)
	}
	return analysis, nil
}

func (p *Pipeline) draft(ctx context.Context, video youtube.Video, sel platform.Selection, analysis AnalysisResult) (DraftContent, error) {
	raw, err := p.llm.Complete(ctx, BuildDraftPrompt(video, sel, analysis))
	if err != nil {
		return DraftContent{}, stageErr(StageDraft, err)
	}
	draft, err := ParseDraft(raw)
	if err != nil {
		return DraftContent{}, stageErr(StageDraft, err)
	}
	return draft, nil
}

func (p *Pipeline) optimize(ctx context.Context, video youtube.Video, profile platform.Profile, draft DraftContent) (string, error) {
	raw, err := p.llm.Complete(ctx, BuildOptimizePrompt(video, profile, draft))
	if err != nil {
		return "", stageErr(StageOptimize, err)
	}
	text, err := ParseFinal(raw)
	if err != nil {
		return "", stageErr(StageOptimize, err)
	}
	return text, nil
}
