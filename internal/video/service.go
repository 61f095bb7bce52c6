package video

import (
	"context"
	"fmt"
	"time"

	"github.com/RaihanSardarUI/Twitter/internal/cache"
	"github.com/RaihanSardarUI/Twitter/internal/extract"
	"github.com/RaihanSardarUI/Twitter/internal/quality"
	"github.com/RaihanSardarUI/Twitter/pkg/logger"
	"golang.org/x/sync/singleflight"
)

var log = logger.Get("VideoServ")

type (
	InvalidURLError struct{ URL string }

	// NoRenditionsError reports a post whose extraction succeeded but
	// offered no downloadable rendition in the target container.
	NoRenditionsError struct{ TotalFormats int }

	extractor interface {
		Extract(ctx context.Context, url string, cookieFile string) (*extract.Payload, error)
	}

	credentialSource interface {
		FilePath() (string, bool)
	}

	// Service is the cache-then-selector pipeline: a fetch consults the
	// result cache first and only on a miss invokes the extraction backend,
	// reduces the format list to a best pick, and stores the record.
	Service struct {
		extractor   extractor
		credentials credentialSource
		results     *cache.Store[*Result]
		flight      singleflight.Group
	}
)

func (err *InvalidURLError) Error() string {
	return fmt.Sprintf("'%s' is not a valid Twitter/X post URL", err.URL)
}

func (err *NoRenditionsError) Error() string {
	return fmt.Sprintf("no %s renditions available among %d formats", TargetContainer, err.TotalFormats)
}

func NewService(extractor extractor, credentials credentialSource, results *cache.Store[*Result]) *Service {
	return &Service{
		extractor:   extractor,
		credentials: credentials,
		results:     results,
	}
}

// Fetch resolves the record for the given post URL, serving from the
// result cache when possible. Concurrent misses for the same key collapse
// into a single upstream extraction whose outcome, success or failure, is
// shared by every waiter; nothing is cached on failure.
func (service *Service) Fetch(ctx context.Context, rawURL string, sensitiveContent bool) (*Result, error) {
	normalized := NormalizeURL(rawURL)
	if !IsStatusURL(normalized) {
		return nil, &InvalidURLError{URL: rawURL}
	}

	key := cache.Key(normalized, sensitiveContent)
	if result, ok := service.results.Get(key); ok {
		log.Emit(logger.DEBUG, "Serving cached result for %s\n", normalized)
		return result, nil
	}

	// The flight is detached from this caller's cancellation because other
	// requests may be waiting on the same key; a caller that gives up
	// simply stops waiting below.
	flightCtx := context.WithoutCancel(ctx)
	resultChannel := service.flight.DoChan(key, func() (interface{}, error) {
		return service.fetchAndStore(flightCtx, normalized, sensitiveContent, key)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case outcome := <-resultChannel:
		if outcome.Err != nil {
			return nil, outcome.Err
		}

		//nolint:forcetypeassert
		return outcome.Val.(*Result), nil
	}
}

func (service *Service) fetchAndStore(ctx context.Context, url string, sensitiveContent bool, key string) (*Result, error) {
	cookieFile := ""
	if sensitiveContent {
		if path, ok := service.credentials.FilePath(); ok {
			cookieFile = path
			log.Emit(logger.INFO, "Using stored cookies for sensitive content request\n")
		}
	}

	log.Emit(logger.INFO, "Extracting video data for %s\n", url)
	payload, err := service.extractor.Extract(ctx, url, cookieFile)
	if err != nil {
		return nil, err
	}

	descriptors := make([]quality.Descriptor, len(payload.Formats))
	for i, format := range payload.Formats {
		descriptors[i] = quality.Descriptor{
			Container:      format.Ext,
			VideoCodec:     format.VideoCodec,
			Width:          format.Width,
			Height:         format.Height,
			Resolution:     format.Resolution,
			OverallBitrate: format.OverallBitrate,
			VideoBitrate:   format.VideoBitrate,
			FrameRate:      format.FrameRate,
			Filesize:       format.EffectiveFilesize(),
			URL:            format.URL,
		}
	}

	best, ranked := quality.Select(descriptors, TargetContainer)
	log.Emit(logger.DEBUG, "%d formats found for %s, %d matched container %s\n", len(payload.Formats), url, len(ranked), TargetContainer)
	if best == nil {
		return nil, &NoRenditionsError{TotalFormats: len(payload.Formats)}
	}

	result := newResult(payload, best, ranked, sensitiveContent, time.Now())
	service.results.Set(key, result)
	log.Emit(logger.SUCCESS, "Extracted '%s' (%s, %s)\n", result.Title, result.Quality, result.FileSizeLabel)

	return result, nil
}
