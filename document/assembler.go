// Package document packages final pipeline content into the downloadable
// artifact: a markdown document with a title header and metadata line, plus
// an HTML rendering for the web preview.
package document

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/Gouranga-GH/yt-to-other-sm/pipeline"
	"github.com/Gouranga-GH/yt-to-other-sm/platform"
	"github.com/Gouranga-GH/yt-to-other-sm/youtube"
)

// Document is the assembled artifact offered for download.
type Document struct {
	Title       string                   `json:"title"`
	Platform    platform.Platform        `json:"platform"`
	ContentType platform.ContentType     `json:"content_type"`
	SourceURL   string                   `json:"source_url"`
	Source      youtube.TranscriptSource `json:"transcript_source"`
	GeneratedAt time.Time                `json:"generated_at"`
	Body        string                   `json:"body"`
}

// Assemble builds the document for a finished run. Deterministic aside from
// the timestamp; no side effects.
func Assemble(final pipeline.FinalContent, video youtube.Video, now time.Time) Document {
	return Document{
		Title:       video.Title,
		Platform:    final.Platform,
		ContentType: final.ContentType,
		SourceURL:   video.URL,
		Source:      video.Source,
		GeneratedAt: now,
		Body:        final.FormattedText,
	}
}

// Markdown renders the full document: title header, metadata line, body.
func (d Document) Markdown() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", d.Title)
	fmt.Fprintf(&sb, "*%s %s, generated from %s (%s)*\n\n", d.Platform, d.ContentType, d.SourceURL, d.Source)
	sb.WriteString("---\n\n")
	sb.WriteString(d.Body)
	sb.WriteString("\n")
	return sb.String()
}

// HTML renders the markdown for the web preview.
func (d Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(d.Markdown()), &buf); err != nil {
		return "", fmt.Errorf("render document: %w", err)
	}
	return buf.String(), nil
}

// Filename is the download name: {platform}_{type}_{timestamp}.md.
func (d Document) Filename() string {
	return fmt.Sprintf("%s_%s_%s.md",
		strings.ToLower(string(d.Platform)),
		strings.ToLower(string(d.ContentType)),
		d.GeneratedAt.Format("20060102_150405"))
}
