package pipeline

import (
	"fmt"
	"strings"

	"github.com/Gouranga-GH/yt-to-other-sm/platform"
	"github.com/Gouranga-GH/yt-to-other-sm/youtube"
)

// Prompt is the message pair sent to the model for one stage.
type Prompt struct {
	Stage  string
	System string
	User   string
}

// sourceContract is repeated at every stage so the model never reaches past
// the actual video material.
const sourceContract = "IMPORTANT: Use ONLY the transcript and description provided. " +
	"Do NOT use general knowledge or invent facts absent from the source material."

func systemFor(stage string) string {
	cfg := stageConfigs[stage]
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("You are a %s. %s\n", cfg.Role, cfg.Backstory))
	sb.WriteString(fmt.Sprintf("Your goal: %s.\n", cfg.Goal))
	sb.WriteString(sourceContract)
	return sb.String()
}

func writeSourceMaterial(sb *strings.Builder, video youtube.Video) {
	fmt.Fprintf(sb, "Title: %s\n", video.Title)
	fmt.Fprintf(sb, "Duration: %d seconds\n", video.Duration)
	fmt.Fprintf(sb, "Description: %s\n", video.Description)
	fmt.Fprintf(sb, "Transcript (source: %s):\n%s\n", video.Source, video.Transcript)
}

// BuildAnalyzePrompt asks for a structured analysis of the video material.
func BuildAnalyzePrompt(video youtube.Video, sel platform.Selection) Prompt {
	var sb strings.Builder
	sb.WriteString("You are analyzing a YouTube video.\n")
	writeSourceMaterial(&sb, video)
	fmt.Fprintf(&sb, "\nExtract the main topic, 5-7 key points, tone signals, and a short summary "+
		"from the material above. Focus on elements that would resonate with a %s audience.\n", sel.Platform)
	sb.WriteString("\nAnswer using exactly these section headers:\n")
	sb.WriteString("MAIN TOPIC:\n[one line]\n\n")
	sb.WriteString("KEY POINTS:\n[5-7 bullet points, each starting with \"- \"]\n\n")
	sb.WriteString("TONE:\n[2-4 bullet points describing the tone, each starting with \"- \"]\n\n")
	sb.WriteString("SUMMARY:\n[2-3 sentences]\n")

	return Prompt{Stage: StageAnalyze, System: systemFor(StageAnalyze), User: sb.String()}
}

// BuildDraftPrompt turns the analysis into platform-agnostic narrative content.
func BuildDraftPrompt(video youtube.Video, sel platform.Selection, analysis AnalysisResult) Prompt {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Based on the analysis below, create engaging content for %s, "+
		"to be finalized later as a %s.\n", sel.Platform, sel.ContentType)
	sb.WriteString("Make it compelling, informative, and shareable.\n\n")

	fmt.Fprintf(&sb, "ANALYSIS:\nMain topic: %s\n", analysis.Topic)
	for _, kp := range analysis.KeyPoints {
		fmt.Fprintf(&sb, "- %s\n", kp)
	}
	if len(analysis.ToneSignals) > 0 {
		fmt.Fprintf(&sb, "Tone: %s\n", strings.Join(analysis.ToneSignals, ", "))
	}
	fmt.Fprintf(&sb, "Summary: %s\n\n", analysis.Summary)

	sb.WriteString("REFERENCE SOURCE MATERIAL:\n")
	writeSourceMaterial(&sb, video)

	sb.WriteString("\nAnswer using exactly these section headers:\n")
	sb.WriteString("TITLE:\n[a suggested title]\n\n")
	sb.WriteString("BODY:\n[the narrative content]\n")

	return Prompt{Stage: StageDraft, System: systemFor(StageDraft), User: sb.String()}
}

// BuildOptimizePrompt applies the platform profile to the draft.
func BuildOptimizePrompt(video youtube.Video, profile platform.Profile, draft DraftContent) Prompt {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Take the draft below and optimize it specifically for a %s %s.\n",
		profile.Platform, profile.ContentType)
	sb.WriteString("Apply these platform rules:\n")
	fmt.Fprintf(&sb, "- Maximum length: %d characters.\n", profile.MaxChars)
	fmt.Fprintf(&sb, "- Tone: %s.\n", profile.Tone)
	fmt.Fprintf(&sb, "- Structure: %s.\n", profile.Structure)
	if profile.MinHashtags > 0 {
		fmt.Fprintf(&sb, "- Include %d to %d relevant hashtags.\n", profile.MinHashtags, profile.MaxHashtags)
	}

	fmt.Fprintf(&sb, "\nDRAFT TITLE: %s\n\nDRAFT:\n%s\n", draft.SuggestedTitle, draft.Body)

	sb.WriteString("\nREFERENCE SOURCE MATERIAL:\n")
	writeSourceMaterial(&sb, video)

	sb.WriteString("\nOutput ONLY the final optimized content, ready to publish. No commentary.\n")

	return Prompt{Stage: StageOptimize, System: systemFor(StageOptimize), User: sb.String()}
}
