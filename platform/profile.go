// Package platform holds the static formatting profiles for the supported
// publishing destinations. A profile tells the optimization stage how long the
// content may be, what tone to aim for, and which structural conventions apply.
package platform

import "fmt"

// Platform is a publishing destination.
type Platform string

const (
	Instagram Platform = "Instagram"
	Medium    Platform = "Medium"
)

// ContentType is a platform-specific content format.
type ContentType string

const (
	// Instagram formats.
	Post     ContentType = "Post"
	Story    ContentType = "Story"
	Carousel ContentType = "Carousel"

	// Medium formats. Story is shared with Instagram.
	Article  ContentType = "Article"
	Tutorial ContentType = "Tutorial"
)

// Selection is the caller's platform + content-type choice.
type Selection struct {
	Platform    Platform    `json:"platform"`
	ContentType ContentType `json:"content_type"`
}

// Profile is the formatting ruleset consumed by the optimization stage.
type Profile struct {
	Platform    Platform
	ContentType ContentType
	// MaxChars bounds the final formatted text.
	MaxChars int
	Tone     string
	// Structure is a short description of the expected layout, fed verbatim
	// into the optimization prompt.
	Structure string
	// MinHashtags/MaxHashtags are zero for platforms without hashtag culture.
	MinHashtags int
	MaxHashtags int
}

// ConfigError reports a (platform, content type) pair outside the supported set.
type ConfigError struct {
	Platform    Platform
	ContentType ContentType
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("unsupported platform/content-type pair: %s/%s", e.Platform, e.ContentType)
}

type pairKey struct {
	platform    Platform
	contentType ContentType
}

var profiles = map[pairKey]Profile{
	{Instagram, Post}: {
		Platform: Instagram, ContentType: Post,
		MaxChars:    2200,
		Tone:        "casual, energetic",
		Structure:   "hook line, short paragraphs, emoji accents, call-to-action, hashtag block at the end",
		MinHashtags: 5, MaxHashtags: 15,
	},
	{Instagram, Story}: {
		Platform: Instagram, ContentType: Story,
		MaxChars:    500,
		Tone:        "punchy, conversational",
		Structure:   "one to three short slides of text, each a single idea, ending with a swipe-up style prompt",
		MinHashtags: 1, MaxHashtags: 5,
	},
	{Instagram, Carousel}: {
		Platform: Instagram, ContentType: Carousel,
		MaxChars:    2200,
		Tone:        "educational, engaging",
		Structure:   "numbered slides (Slide 1..N), one key point per slide, closing slide with call-to-action, hashtag block at the end",
		MinHashtags: 5, MaxHashtags: 15,
	},
	{Medium, Article}: {
		Platform: Medium, ContentType: Article,
		MaxChars:  12000,
		Tone:      "thoughtful, informative",
		Structure: "markdown article with a title, an opening hook, subheadings, and a conclusion with actionable insights",
	},
	{Medium, Story}: {
		Platform: Medium, ContentType: Story,
		MaxChars:  8000,
		Tone:      "personal, narrative",
		Structure: "first-person storytelling arc: setup, tension, resolution, takeaway",
	},
	{Medium, Tutorial}: {
		Platform: Medium, ContentType: Tutorial,
		MaxChars:  12000,
		Tone:      "clear, instructional",
		Structure: "markdown tutorial with prerequisites, numbered steps under subheadings, and a summary of what was learned",
	},
}

// Lookup returns the profile for the pair, or *ConfigError when the pair is
// not supported.
func Lookup(p Platform, ct ContentType) (Profile, error) {
	prof, ok := profiles[pairKey{p, ct}]
	if !ok {
		return Profile{}, &ConfigError{Platform: p, ContentType: ct}
	}
	return prof, nil
}

// ContentTypes lists the supported content types for a platform, in UI order.
func ContentTypes(p Platform) []ContentType {
	switch p {
	case Instagram:
		return []ContentType{Post, Story, Carousel}
	case Medium:
		return []ContentType{Article, Story, Tutorial}
	default:
		return nil
	}
}

// Validate checks the selection against the supported set.
func (s Selection) Validate() error {
	_, err := Lookup(s.Platform, s.ContentType)
	return err
}
