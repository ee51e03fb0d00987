// Package youtube extracts video metadata and transcript text from a YouTube
// watch URL. Metadata (title, description, duration) comes from the watch
// page's embedded player response; the transcript comes from the caption API,
// falling back to the description when no English captions exist.
package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	watchBaseURL = "https://www.youtube.com/watch?v="

	// fallbackTranscriptLimit bounds how much of the description is used as
	// transcript when no captions exist.
	fallbackTranscriptLimit = 1000
)

var playerResponseMarker = "ytInitialPlayerResponse"

// TranscriptFetcher fetches the plain-text English transcript for a video ID.
// Implementations return an error (or empty text) when no caption track exists.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// Extractor implements metadata + transcript extraction for watch URLs.
type Extractor struct {
	client    *http.Client
	captions  TranscriptFetcher
	logger    *log.Logger
	watchBase string
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(e *Extractor) { e.client = c }
}

// WithTranscriptFetcher replaces the caption API client.
func WithTranscriptFetcher(f TranscriptFetcher) Option {
	return func(e *Extractor) { e.captions = f }
}

// WithWatchBaseURL overrides where watch pages are fetched from.
func WithWatchBaseURL(base string) Option {
	return func(e *Extractor) { e.watchBase = base }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Extractor) { e.logger = l }
}

// New builds an Extractor with a 30s HTTP timeout and the caption API client.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		client:    &http.Client{Timeout: 30 * time.Second},
		captions:  newCaptionFetcher(),
		logger:    log.Default(),
		watchBase: watchBaseURL,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract fetches the video record for rawURL. It fails with *ExtractionError
// when the URL is not a video link or the watch page yields no metadata.
func (e *Extractor) Extract(ctx context.Context, rawURL string) (Video, error) {
	videoID := ExtractVideoID(rawURL)
	if videoID == "" {
		return Video{}, &ExtractionError{URL: rawURL, Err: errors.New("could not extract video ID from URL")}
	}

	details, err := e.fetchDetails(ctx, videoID)
	if err != nil {
		return Video{}, &ExtractionError{URL: rawURL, Err: err}
	}

	duration, _ := strconv.Atoi(details.LengthSeconds)
	video := Video{
		ID:          videoID,
		URL:         rawURL,
		Title:       details.Title,
		Description: details.ShortDescription,
		Duration:    duration,
	}

	transcript, err := e.captions.Fetch(ctx, videoID)
	if err != nil || strings.TrimSpace(transcript) == "" {
		if err != nil {
			e.logger.Printf("[youtube] transcript unavailable for %s, using description: %v", videoID, err)
		}
		video.Transcript = truncate(details.ShortDescription, fallbackTranscriptLimit)
		video.Source = SourceDescriptionFallback
		return video, nil
	}

	video.Transcript = strings.TrimSpace(transcript)
	video.Source = SourceCaptions
	e.logger.Printf("[youtube] extracted %q (%ds, %d transcript chars)", video.Title, video.Duration, len(video.Transcript))
	return video, nil
}

type videoDetails struct {
	VideoID          string `json:"videoId"`
	Title            string `json:"title"`
	ShortDescription string `json:"shortDescription"`
	LengthSeconds    string `json:"lengthSeconds"`
}

type playerResponse struct {
	VideoDetails videoDetails `json:"videoDetails"`
}

func (e *Extractor) fetchDetails(ctx context.Context, videoID string) (videoDetails, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.watchBase+videoID, nil)
	if err != nil {
		return videoDetails{}, err
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := e.client.Do(req)
	if err != nil {
		return videoDetails{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return videoDetails{}, fmt.Errorf("watch page returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return videoDetails{}, err
	}

	pr, err := parsePlayerResponse(string(body))
	if err != nil {
		return videoDetails{}, err
	}
	if pr.VideoDetails.Title == "" {
		return videoDetails{}, errors.New("watch page has no video details")
	}
	return pr.VideoDetails, nil
}

// parsePlayerResponse locates the ytInitialPlayerResponse assignment in the
// watch page HTML and decodes the first JSON value after it. The decoder
// stops at the end of the object, so trailing script text is harmless.
func parsePlayerResponse(html string) (playerResponse, error) {
	idx := strings.Index(html, playerResponseMarker)
	if idx < 0 {
		return playerResponse{}, errors.New("player response not found in watch page")
	}
	rest := html[idx+len(playerResponseMarker):]
	brace := strings.Index(rest, "{")
	if brace < 0 {
		return playerResponse{}, errors.New("player response not found in watch page")
	}

	var pr playerResponse
	dec := json.NewDecoder(strings.NewReader(rest[brace:]))
	if err := dec.Decode(&pr); err != nil {
		return playerResponse{}, fmt.Errorf("decode player response: %w", err)
	}
	return pr, nil
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
