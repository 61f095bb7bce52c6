package video_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/RaihanSardarUI/Twitter/internal/video"
	"github.com/stretchr/testify/assert"
)

func Test_NormalizeURL(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"https://twitter.com/user/status/123", "https://x.com/user/status/123"},
		{"https://x.com/user/status/123", "https://x.com/user/status/123"},
		{"  https://twitter.com/user/status/123  ", "https://x.com/user/status/123"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, video.NormalizeURL(tt.raw))
	}
}

func Test_IsStatusURL(t *testing.T) {
	tests := []struct {
		url     string
		matches bool
	}{
		{"https://x.com/user/status/1672884416430096384", true},
		{"http://twitter.com/some_user/status/1", true},
		{"https://x.com/user", false},
		{"https://x.com/user/status/", false},
		{"https://example.com/user/status/123", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.matches, video.IsStatusURL(tt.url), "url: %s", tt.url)
	}
}

func Test_FormatDuration(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{0, "Unknown"},
		{-5, "Unknown"},
		{59, "0:59"},
		{83, "1:23"},
		{600, "10:00"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, video.FormatDuration(tt.seconds))
		})
	}
}

func Test_FormatUploadDate(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"20240601", "2024-06-01"},
		{"19991231", "1999-12-31"},
		{"", "Unknown"},
		{"2024", "Unknown"},
		{"2024-06-01", "Unknown"},
		{"notadate", "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, video.FormatUploadDate(tt.raw))
	}
}

func Test_SanitizeFilename(t *testing.T) {
	fetchedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("strips hostile characters", func(t *testing.T) {
		assert.Equal(t, "a_b_c_d.mp4", video.SanitizeFilename(`a<b>c/d`, fetchedAt))
	})

	t.Run("drops non-ascii runes", func(t *testing.T) {
		assert.Equal(t, "hello .mp4", video.SanitizeFilename("hello 世界", fetchedAt))
	})

	t.Run("caps length", func(t *testing.T) {
		name := video.SanitizeFilename(strings.Repeat("a", 300), fetchedAt)
		assert.Len(t, name, 100+len(".mp4"))
	})

	t.Run("empty title falls back to timestamped name", func(t *testing.T) {
		expected := fmt.Sprintf("twitter_video_%d.mp4", fetchedAt.Unix())
		assert.Equal(t, expected, video.SanitizeFilename("", fetchedAt))
		assert.Equal(t, expected, video.SanitizeFilename("   ", fetchedAt))
	})
}
