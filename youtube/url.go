package youtube

import (
	"net/url"
	"regexp"
	"strings"
)

var watchURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/watch\?v=[\w-]+`),
	regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/embed/[\w-]+`),
	regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtu\.be/[\w-]+`),
}

// ValidURL reports whether rawURL looks like a YouTube video link.
func ValidURL(rawURL string) bool {
	for _, re := range watchURLPatterns {
		if re.MatchString(rawURL) {
			return true
		}
	}
	return false
}

// ExtractVideoID pulls the video ID out of a YouTube URL. Supported forms are
// youtube.com/watch?v=ID, youtu.be/ID, and youtube.com/embed/ID. Returns ""
// when no ID can be found.
func ExtractVideoID(rawURL string) string {
	switch {
	case strings.Contains(rawURL, "youtube.com/watch"):
		u, err := url.Parse(rawURL)
		if err != nil {
			return ""
		}
		return u.Query().Get("v")
	case strings.Contains(rawURL, "youtu.be/"):
		rest := rawURL[strings.Index(rawURL, "youtu.be/")+len("youtu.be/"):]
		return strings.SplitN(rest, "?", 2)[0]
	case strings.Contains(rawURL, "youtube.com/embed/"):
		rest := rawURL[strings.Index(rawURL, "youtube.com/embed/")+len("youtube.com/embed/"):]
		return strings.SplitN(rest, "?", 2)[0]
	default:
		return ""
	}
}
