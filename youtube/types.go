package youtube

import "fmt"

// TranscriptSource records where the transcript text came from.
type TranscriptSource string

const (
	// SourceCaptions means an English caption track was found and fetched.
	SourceCaptions TranscriptSource = "captions"
	// SourceDescriptionFallback means no caption track was available and the
	// video description stands in as source material.
	SourceDescriptionFallback TranscriptSource = "description_fallback"
)

// Video is the extracted record for a single video: the metadata from the
// watch page plus the transcript text the pipeline works from. Built once per
// request and not mutated afterwards.
type Video struct {
	ID          string           `json:"video_id"`
	URL         string           `json:"url"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Duration    int              `json:"duration"`
	Transcript  string           `json:"transcript"`
	Source      TranscriptSource `json:"transcript_source"`
}

// ExtractionError reports that no metadata or transcript could be obtained
// for a URL.
type ExtractionError struct {
	URL string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.URL, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
