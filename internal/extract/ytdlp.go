package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/RaihanSardarUI/Twitter/pkg/logger"
)

var log = logger.Get("Extract")

// probeURL is a known-public post used to exercise the backend when
// validating freshly uploaded cookies.
const probeURL = "https://x.com/X/status/1580576104823468034"

type (
	Config struct {
		BinaryPath     string `yaml:"binary_path" env:"YTDLP_BINARY" env-default:"yt-dlp"`
		TimeoutSeconds int    `yaml:"timeout_seconds" env:"YTDLP_TIMEOUT_SECONDS" env-default:"90"`
	}

	// YtDlpExtractor shells out to the yt-dlp binary and decodes its JSON
	// dump. It performs no parsing of the platform's internal APIs itself;
	// that is entirely yt-dlp's job.
	YtDlpExtractor struct {
		config Config
	}
)

func NewYtDlp(config Config) *YtDlpExtractor {
	return &YtDlpExtractor{config: config}
}

// Extract runs the backend against the given URL and returns the decoded
// payload. When cookieFile is non-empty it is handed to the backend so
// authenticated/restricted content can be resolved. Failures are returned
// as the typed errors of this package without reinterpretation.
func (extractor *YtDlpExtractor) Extract(ctx context.Context, url string, cookieFile string) (*Payload, error) {
	runCtx, cancel := context.WithTimeout(ctx, time.Duration(extractor.config.TimeoutSeconds)*time.Second)
	defer cancel()

	args := []string{"--dump-single-json", "--no-playlist", "--no-warnings"}
	if cookieFile != "" {
		args = append(args, "--cookies", cookieFile)
	}
	args = append(args, url)

	cmd := exec.CommandContext(runCtx, extractor.config.BinaryPath, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Emit(logger.VERBOSE, "Running %s for %s (cookies=%t)\n", extractor.config.BinaryPath, url, cookieFile != "")
	if err := cmd.Run(); err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return nil, &ExtractionError{Reason: fmt.Sprintf("backend timed out after %ds", extractor.config.TimeoutSeconds)}
		}

		return nil, classifyFailure(stderr.String())
	}

	var payload Payload
	if err := json.Unmarshal(stdout.Bytes(), &payload); err != nil {
		return nil, &ExtractionError{Reason: fmt.Sprintf("backend output could not be decoded: %s", err.Error())}
	}

	log.Emit(logger.DEBUG, "Extraction for %s found %d formats\n", url, len(payload.Formats))
	return &payload, nil
}

// Probe performs a lightweight extraction of a known-public post using the
// given cookie file. A nil return means the backend accepted the cookies;
// typed errors surface invalid or insufficient credentials.
func (extractor *YtDlpExtractor) Probe(ctx context.Context, cookieFile string) error {
	runCtx, cancel := context.WithTimeout(ctx, time.Duration(extractor.config.TimeoutSeconds)*time.Second)
	defer cancel()

	args := []string{"--simulate", "--quiet", "--no-warnings", "--no-playlist", "--cookies", cookieFile, probeURL}
	cmd := exec.CommandContext(runCtx, extractor.config.BinaryPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return classifyFailure(stderr.String())
	}

	return nil
}
