package pipeline

import (
	"fmt"

	"github.com/Gouranga-GH/yt-to-other-sm/platform"
)

// Stage names, in execution order.
const (
	StageAnalyze  = "analyze"
	StageDraft    = "draft"
	StageOptimize = "optimize"
	StageValidate = "validate"
)

// AnalysisResult is the output of the analyze stage: what the video is about,
// taken strictly from its transcript and description.
type AnalysisResult struct {
	Topic       string   `json:"topic"`
	KeyPoints   []string `json:"key_points"`
	ToneSignals []string `json:"tone_signals"`
	Summary     string   `json:"summary"`
}

// DraftContent is the output of the draft stage: platform-agnostic narrative
// content with a suggested title.
type DraftContent struct {
	SuggestedTitle string `json:"suggested_title"`
	Body           string `json:"body"`
}

// FinalContent is the terminal pipeline artifact, formatted for the selected
// platform and content type.
type FinalContent struct {
	FormattedText string               `json:"formatted_text"`
	Platform      platform.Platform    `json:"platform"`
	ContentType   platform.ContentType `json:"content_type"`
}

// GenerationError reports a failed pipeline run and names the stage that
// failed. No partial content accompanies it.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("content generation failed at stage %s: %v", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

func stageErr(stage string, err error) *GenerationError {
	return &GenerationError{Stage: stage, Err: err}
}
