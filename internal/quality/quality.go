package quality

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

type (
	// Descriptor is one candidate rendition of a video as reported by the
	// extraction backend. Fields may be missing; a missing field ranks as
	// lowest priority and is never treated as a failure.
	Descriptor struct {
		Container      string
		VideoCodec     string
		Width          int
		Height         int
		Resolution     string
		OverallBitrate float64
		VideoBitrate   float64
		FrameRate      float64
		Filesize       int64
		URL            string
	}

	// Ranked is the immutable, presentation-ready form of a matched
	// descriptor. Slices of Ranked are ordered best-first.
	Ranked struct {
		Quality  string `json:"quality"`
		Bitrate  string `json:"bitrate"`
		Filesize int64  `json:"filesize,omitempty"`
		Size     string `json:"size,omitempty"`
		URL      string `json:"url"`

		Height int `json:"-"`
	}
)

// Select filters the given descriptors down to those matching the target
// container (case-insensitively, excluding renditions with no video stream)
// and ranks them best-first by height, overall bitrate, video bitrate and
// frame rate, in that order. Ties retain input order.
//
// The best match is returned alongside the full ranked list. Zero matches
// is a normal outcome, reported as (nil, empty); it is never an error.
func Select(descriptors []Descriptor, targetContainer string) (*Ranked, []Ranked) {
	matched := make([]Descriptor, 0, len(descriptors))
	for _, d := range descriptors {
		if !strings.EqualFold(d.Container, targetContainer) {
			continue
		}
		if d.VideoCodec == "none" {
			continue
		}

		matched = append(matched, d)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := &matched[i], &matched[j]
		if ha, hb := a.height(), b.height(); ha != hb {
			return ha > hb
		}
		if a.OverallBitrate != b.OverallBitrate {
			return a.OverallBitrate > b.OverallBitrate
		}
		if a.VideoBitrate != b.VideoBitrate {
			return a.VideoBitrate > b.VideoBitrate
		}
		return a.FrameRate > b.FrameRate
	})

	ranked := make([]Ranked, len(matched))
	for i, d := range matched {
		ranked[i] = newRanked(&d)
	}

	if len(ranked) == 0 {
		return nil, ranked
	}

	return &ranked[0], ranked
}

func newRanked(d *Descriptor) Ranked {
	ranked := Ranked{
		Quality:  qualityLabel(d.height()),
		Bitrate:  bitrateLabel(d.OverallBitrate),
		Filesize: d.Filesize,
		URL:      d.URL,
		Height:   d.height(),
	}

	if d.Filesize > 0 {
		ranked.Size = humanize.Bytes(uint64(d.Filesize))
	}

	return ranked
}

// height resolves the effective height of the descriptor, preferring the
// explicit field and falling back to parsing the resolution label (either
// a "1920x1080" or a "1080p" style string). Unknown height resolves to 0.
func (d *Descriptor) height() int {
	if d.Height > 0 {
		return d.Height
	}

	label := strings.TrimSpace(strings.ToLower(d.Resolution))
	if label == "" {
		return 0
	}

	if idx := strings.LastIndex(label, "x"); idx != -1 {
		if h, err := strconv.Atoi(label[idx+1:]); err == nil && h > 0 {
			return h
		}
		return 0
	}

	if h, err := strconv.Atoi(strings.TrimSuffix(label, "p")); err == nil && h > 0 {
		return h
	}

	return 0
}

func qualityLabel(height int) string {
	if height <= 0 {
		return "unknown"
	}

	return fmt.Sprintf("%dp", height)
}

func bitrateLabel(kbps float64) string {
	if kbps <= 0 {
		return "unknown"
	}

	return fmt.Sprintf("%dkbps", int(math.Round(kbps)))
}
