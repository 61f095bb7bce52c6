package video

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/RaihanSardarUI/Twitter/internal/extract"
	"github.com/RaihanSardarUI/Twitter/internal/quality"
)

const (
	// TargetContainer is the only container surfaced to clients; it is the
	// one Twitter serves as directly downloadable renditions.
	TargetContainer = "mp4"

	// downloadURLLifetime is how long the CDN URLs handed back by the
	// platform remain usable after extraction.
	downloadURLLifetime = 6 * time.Hour

	maxListedQualities = 5
	maxFilenameLength  = 100
)

// Result is the combined record stored in the result cache and returned to
// API clients: the pass-through content metadata, the best download pick,
// and the full quality listing.
type Result struct {
	Title               string           `json:"title"`
	Description         string           `json:"description"`
	Thumbnail           string           `json:"thumbnail"`
	Duration            int              `json:"duration"`
	DurationFormatted   string           `json:"duration_formatted"`
	Uploader            string           `json:"uploader"`
	UploadDate          string           `json:"upload_date"`
	UploadDateFormatted string           `json:"upload_date_formatted"`
	ViewCount           int64            `json:"view_count"`
	LikeCount           int64            `json:"like_count"`
	RepostCount         int64            `json:"repost_count"`
	DownloadURL         string           `json:"download_url"`
	Filename            string           `json:"filename"`
	Format              string           `json:"format"`
	Quality             string           `json:"quality"`
	FileSize            int64            `json:"file_size,omitempty"`
	FileSizeLabel       string           `json:"file_size_label,omitempty"`
	ContentRating       string           `json:"content_rating"`
	ExpiresAt           int64            `json:"expires_at"`
	AvailableQualities  []quality.Ranked `json:"available_qualities"`
	TotalFormatsFound   int              `json:"total_formats_found"`
	ContainerMatches    int              `json:"mp4_formats_found"`
}

func newResult(payload *extract.Payload, best *quality.Ranked, ranked []quality.Ranked, sensitiveContent bool, fetchedAt time.Time) *Result {
	title := payload.Title
	if title == "" {
		title = "Unknown Video"
	}

	listed := ranked
	if len(listed) > maxListedQualities {
		listed = listed[:maxListedQualities]
	}

	return &Result{
		Title:               title,
		Description:         payload.Description,
		Thumbnail:           payload.Thumbnail,
		Duration:            int(payload.Duration),
		DurationFormatted:   FormatDuration(int(payload.Duration)),
		Uploader:            payload.EffectiveUploader(),
		UploadDate:          payload.UploadDate,
		UploadDateFormatted: FormatUploadDate(payload.UploadDate),
		ViewCount:           payload.ViewCount,
		LikeCount:           payload.LikeCount,
		RepostCount:         payload.RepostCount,
		DownloadURL:         best.URL,
		Filename:            SanitizeFilename(title, fetchedAt),
		Format:              TargetContainer,
		Quality:             best.Quality,
		FileSize:            best.Filesize,
		FileSizeLabel:       best.Size,
		ContentRating:       ContentRating(sensitiveContent),
		ExpiresAt:           fetchedAt.Add(downloadURLLifetime).Unix(),
		AvailableQualities:  listed,
		TotalFormatsFound:   len(payload.Formats),
		ContainerMatches:    len(ranked),
	}
}

// ContentRating maps the caller-supplied content-sensitivity flag to the
// rating string surfaced in responses.
func ContentRating(sensitiveContent bool) string {
	if sensitiveContent {
		return "Adult (18+)"
	}

	return "General Audience"
}

// FormatDuration renders a duration in seconds as H:MM:SS, or M:SS when
// under an hour. Zero or negative durations render as "Unknown".
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "Unknown"
	}

	minutes, secs := seconds/60, seconds%60
	hours, minutes := minutes/60, minutes%60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}

	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// FormatUploadDate converts the backend's compact YYYYMMDD date to
// YYYY-MM-DD, or "Unknown" when the input is missing or malformed.
func FormatUploadDate(raw string) string {
	parsed, err := time.Parse("20060102", raw)
	if err != nil {
		return "Unknown"
	}

	return parsed.Format(time.DateOnly)
}

// SanitizeFilename derives a download filename from the post title:
// filesystem-hostile characters become underscores, non-ASCII runes are
// dropped, and the stem is capped before the container suffix is applied.
// An empty title yields a timestamped fallback name.
func SanitizeFilename(title string, fetchedAt time.Time) string {
	if strings.TrimSpace(title) == "" {
		return fmt.Sprintf("twitter_video_%d.%s", fetchedAt.Unix(), TargetContainer)
	}

	var builder strings.Builder
	for _, r := range title {
		switch {
		case strings.ContainsRune(`<>:"/\|?*`, r):
			builder.WriteRune('_')
		case r > unicode.MaxASCII || !unicode.IsPrint(r):
			// dropped
		default:
			builder.WriteRune(r)
		}
	}

	stem := builder.String()
	if len(stem) > maxFilenameLength {
		stem = stem[:maxFilenameLength]
	}
	if strings.TrimSpace(stem) == "" {
		return fmt.Sprintf("twitter_video_%d.%s", fetchedAt.Unix(), TargetContainer)
	}

	return stem + "." + TargetContainer
}
