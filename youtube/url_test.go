package youtube

import "testing"

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"watch url no scheme", "www.youtube.com/watch?v=abc123XYZ_-", "abc123XYZ_-"},
		{"watch url extra params", "https://youtube.com/watch?v=abc123&t=42s", "abc123"},
		{"short url", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"short url with query", "https://youtu.be/dQw4w9WgXcQ?si=xyz", "dQw4w9WgXcQ"},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"embed url with query", "https://www.youtube.com/embed/abc?autoplay=1", "abc"},
		{"not a video url", "https://www.youtube.com/feed/subscriptions", ""},
		{"different site", "https://vimeo.com/12345", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractVideoID(tt.url); got != tt.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

func TestValidURL(t *testing.T) {
	valid := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"http://youtube.com/watch?v=abc",
		"youtube.com/watch?v=abc",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://www.youtube.com/embed/dQw4w9WgXcQ",
	}
	for _, u := range valid {
		if !ValidURL(u) {
			t.Errorf("ValidURL(%q) = false, want true", u)
		}
	}

	invalid := []string{
		"",
		"https://example.com/watch?v=abc",
		"https://www.youtube.com/playlist?list=PL123",
		"not a url",
	}
	for _, u := range invalid {
		if ValidURL(u) {
			t.Errorf("ValidURL(%q) = true, want false", u)
		}
	}
}
