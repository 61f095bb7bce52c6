package extract

type (
	// Payload is the content metadata and format list decoded from the
	// extraction backend for a single post. Everything except Formats is
	// passed through to the API response untouched.
	Payload struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Thumbnail   string   `json:"thumbnail"`
		Duration    float64  `json:"duration"`
		Uploader    string   `json:"uploader"`
		Channel     string   `json:"channel"`
		UploadDate  string   `json:"upload_date"`
		ViewCount   int64    `json:"view_count"`
		LikeCount   int64    `json:"like_count"`
		RepostCount int64    `json:"repost_count"`
		Formats     []Format `json:"formats"`
	}

	// Format is one candidate rendition as reported by yt-dlp. Any field
	// may be absent in the JSON and decodes to its zero value.
	Format struct {
		FormatID       string  `json:"format_id"`
		Ext            string  `json:"ext"`
		URL            string  `json:"url"`
		Width          int     `json:"width"`
		Height         int     `json:"height"`
		Resolution     string  `json:"resolution"`
		FormatNote     string  `json:"format_note"`
		OverallBitrate float64 `json:"tbr"`
		VideoBitrate   float64 `json:"vbr"`
		FrameRate      float64 `json:"fps"`
		Filesize       int64   `json:"filesize"`
		FilesizeApprox int64   `json:"filesize_approx"`
		VideoCodec     string  `json:"vcodec"`
		AudioCodec     string  `json:"acodec"`
	}
)

// EffectiveUploader prefers the uploader field, falling back to the
// channel name when yt-dlp only reports the latter.
func (payload *Payload) EffectiveUploader() string {
	if payload.Uploader != "" {
		return payload.Uploader
	}
	if payload.Channel != "" {
		return payload.Channel
	}

	return "Unknown"
}

// EffectiveFilesize prefers the exact size, falling back to the backend's
// approximation. Zero means unknown.
func (format *Format) EffectiveFilesize() int64 {
	if format.Filesize > 0 {
		return format.Filesize
	}

	return format.FilesizeApprox
}
