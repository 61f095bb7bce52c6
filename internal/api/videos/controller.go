package videos

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/RaihanSardarUI/Twitter/internal/extract"
	"github.com/RaihanSardarUI/Twitter/internal/video"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	FetchRequest struct {
		URL            string `json:"url" validate:"required,url"`
		IsAdultContent bool   `json:"is_adult_content"`
	}

	// FetchResponse wraps the cached result record with the success marker
	// clients key off.
	FetchResponse struct {
		Success bool `json:"success"`
		*video.Result
	}

	BrowserTestResponse struct {
		Status      string `json:"status"`
		Title       string `json:"title,omitempty"`
		Duration    string `json:"duration,omitempty"`
		Quality     string `json:"quality,omitempty"`
		Uploader    string `json:"uploader,omitempty"`
		Rating      string `json:"content_rating,omitempty"`
		Filename    string `json:"filename,omitempty"`
		DownloadURL string `json:"download_url,omitempty"`
		Thumbnail   string `json:"thumbnail,omitempty"`
		Error       string `json:"error,omitempty"`
		URLTested   string `json:"url_tested"`
	}

	VideoService interface {
		Fetch(ctx context.Context, rawURL string, sensitiveContent bool) (*video.Result, error)
	}

	Controller struct {
		service  VideoService
		validate *validator.Validate
	}
)

func New(validate *validator.Validate, service VideoService) *Controller {
	return &Controller{service: service, validate: validate}
}

func (controller *Controller) SetRoutes(eg *echo.Group) {
	eg.POST("/video/fetch", controller.fetch)
	eg.GET("/test", controller.browserTest)
}

// fetch resolves the best-quality download record for the requested post.
func (controller *Controller) fetch(ec echo.Context) error {
	var request FetchRequest
	if err := ec.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid body: %s", err.Error()))
	}
	if err := controller.validate.Struct(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid body: %s", err.Error()))
	}

	result, err := controller.service.Fetch(ec.Request().Context(), request.URL, request.IsAdultContent)
	if err != nil {
		return httpErrorFor(err)
	}

	return ec.JSON(http.StatusOK, FetchResponse{Success: true, Result: result})
}

// demoPostURL is a known-public post with a video, used by the browser
// test endpoint when no URL is supplied.
const demoPostURL = "https://x.com/adh0005812/status/1672884416430096384"

// browserTest is the GET variant of fetch, intended for quick testing from
// a browser address bar. The 'adult' query param defaults to true so
// restricted posts work out of the box when cookies are loaded.
func (controller *Controller) browserTest(ec echo.Context) error {
	rawURL := ec.QueryParam("url")
	if rawURL == "" {
		rawURL = demoPostURL
	}
	sensitiveContent := ec.QueryParam("adult") != "false"

	result, err := controller.service.Fetch(ec.Request().Context(), rawURL, sensitiveContent)
	if err != nil {
		return ec.JSON(http.StatusOK, BrowserTestResponse{
			Status:    "ERROR",
			Error:     userMessageFor(err),
			URLTested: rawURL,
		})
	}

	return ec.JSON(http.StatusOK, BrowserTestResponse{
		Status:      "SUCCESS",
		Title:       result.Title,
		Duration:    result.DurationFormatted,
		Quality:     result.Quality,
		Uploader:    result.Uploader,
		Rating:      result.ContentRating,
		Filename:    result.Filename,
		DownloadURL: result.DownloadURL,
		Thumbnail:   result.Thumbnail,
		URLTested:   rawURL,
	})
}

// httpErrorFor translates pipeline errors into HTTP errors. Invalid input
// is the caller's fault; everything from the extraction backend surfaces
// as an internal error with an actionable message.
func httpErrorFor(err error) *echo.HTTPError {
	var invalidURL *video.InvalidURLError
	if errors.As(err, &invalidURL) {
		return echo.NewHTTPError(http.StatusBadRequest, "Please provide a valid Twitter/X URL (e.g., https://x.com/user/status/123...)")
	}

	return echo.NewHTTPError(http.StatusInternalServerError, userMessageFor(err))
}

func userMessageFor(err error) string {
	var (
		invalidURL   *video.InvalidURLError
		noRenditions *video.NoRenditionsError
		notFound     *extract.NotFoundError
		denied       *extract.AccessDeniedError
		rateLimited  *extract.RateLimitedError
		authRequired *extract.AuthRequiredError
		unsupported  *extract.UnsupportedError
		unavailable  *extract.UnavailableError
	)

	switch {
	case errors.As(err, &invalidURL):
		return "Please provide a valid Twitter/X URL (e.g., https://x.com/user/status/123...)"
	case errors.As(err, &notFound):
		return "Tweet not found. The tweet may have been deleted, the account is private, or the tweet doesn't contain a video."
	case errors.As(err, &denied):
		return "Access forbidden. Cannot access private accounts or restricted content. Try uploading cookies."
	case errors.As(err, &rateLimited):
		return "Rate limit exceeded. Please wait a few minutes before trying again."
	case errors.As(err, &authRequired):
		return "Unauthorized access. Upload cookies to access private/restricted content."
	case errors.As(err, &unsupported):
		return "This Twitter/X URL is not supported. Please make sure the tweet contains a video."
	case errors.As(err, &unavailable):
		return "Video is unavailable. It might be private, deleted, or from a protected account."
	case errors.As(err, &noRenditions):
		return "Unable to extract video. The tweet might not contain a video or might be restricted."
	default:
		return err.Error()
	}
}
