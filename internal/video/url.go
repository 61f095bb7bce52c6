package video

import (
	"regexp"
	"strings"
)

var (
	twitterHostPattern = regexp.MustCompile(`twitter\.com`)
	statusURLPattern   = regexp.MustCompile(`^https?://(twitter\.com|x\.com)/.+/status/\d+`)
)

// NormalizeURL trims the raw URL and rewrites legacy twitter.com hosts to
// x.com so both spellings of the same post share a cache entry.
func NormalizeURL(raw string) string {
	return twitterHostPattern.ReplaceAllString(strings.TrimSpace(raw), "x.com")
}

// IsStatusURL reports whether the (normalized) URL points at an individual
// post capable of carrying a video.
func IsStatusURL(url string) bool {
	return statusURLPattern.MatchString(url)
}
