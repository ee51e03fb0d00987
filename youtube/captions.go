package youtube

import (
	"context"
	"fmt"

	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript"
	"github.com/horiagug/youtube-transcript-api-go/pkg/yt_transcript_formatters"
)

// formattedTranscriptClient is the slice of the transcript API client we use.
type formattedTranscriptClient interface {
	GetFormattedTranscripts(videoID string, languages []string, preserveFormatting bool) (string, error)
}

// captionFetcher fetches English captions as plain text, without timestamps.
type captionFetcher struct {
	client    formattedTranscriptClient
	languages []string
}

func newCaptionFetcher() *captionFetcher {
	formatter := yt_transcript_formatters.NewTextFormatter(
		yt_transcript_formatters.WithTimestamps(false),
		yt_transcript_formatters.WithLanguageCode(false),
	)
	return &captionFetcher{
		client:    yt_transcript.NewClient(yt_transcript.WithFormatter(formatter)),
		languages: []string{"en"},
	}
}

func (c *captionFetcher) Fetch(_ context.Context, videoID string) (string, error) {
	text, err := c.client.GetFormattedTranscripts(videoID, c.languages, false)
	if err != nil {
		return "", fmt.Errorf("fetch captions for %s: %w", videoID, err)
	}
	return text, nil
}
