package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/RaihanSardarUI/Twitter/internal/extract"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type (
	UploadRequest struct {
		Cookies []json.RawMessage `json:"cookies" validate:"required,min=1"`
	}

	RawUploadRequest struct {
		RawCookies string `json:"raw_cookies" validate:"required"`
	}

	AuthStatusResponse struct {
		Authenticated bool   `json:"authenticated"`
		CookieCount   int    `json:"cookie_count"`
		Status        string `json:"status"`
	}

	CookiesResponse struct {
		Success      bool   `json:"success"`
		Message      string `json:"message"`
		CookiesCount int    `json:"cookies_count"`
	}

	CookieStore interface {
		SaveFromBrowserJSON(raw []byte) (int, error)
		Clear() error
		Count() (int, error)
		Present() bool
		FilePath() (string, bool)
	}

	// BackendProber checks whether the stored cookie file is accepted by
	// the extraction backend.
	BackendProber interface {
		Probe(ctx context.Context, cookieFile string) error
	}

	Controller struct {
		store    CookieStore
		prober   BackendProber
		validate *validator.Validate
	}
)

func New(validate *validator.Validate, store CookieStore, prober BackendProber) *Controller {
	return &Controller{store: store, prober: prober, validate: validate}
}

func (controller *Controller) SetRoutes(eg *echo.Group) {
	eg.POST("/auth/cookies", controller.upload)
	eg.DELETE("/auth/cookies", controller.clear)
	eg.GET("/auth/status", controller.authStatus)
	eg.POST("/cookies/add-raw", controller.addRaw)
	eg.GET("/cookies/status", controller.cookiesStatus)
	eg.POST("/cookies/validate", controller.validateCookies)
}

// upload stores a browser cookie export so the extraction backend can
// resolve private/restricted content on subsequent fetches.
func (controller *Controller) upload(ec echo.Context) error {
	var request UploadRequest
	if err := ec.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid body: %s", err.Error()))
	}
	if err := controller.validate.Struct(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No cookies provided")
	}

	raw, err := json.Marshal(request.Cookies)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid cookies: %s", err.Error()))
	}

	if _, err := controller.store.SaveFromBrowserJSON(raw); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("Failed to save cookies: %s", err.Error()))
	}

	return ec.JSON(http.StatusOK, map[string]string{
		"message": "Cookies uploaded successfully! You can now access private/restricted content.",
	})
}

func (controller *Controller) clear(ec echo.Context) error {
	if err := controller.store.Clear(); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("Error clearing cookies: %s", err.Error()))
	}

	return ec.JSON(http.StatusOK, map[string]string{"message": "Cookies cleared successfully"})
}

func (controller *Controller) authStatus(ec echo.Context) error {
	count, err := controller.store.Count()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("Error reading cookies: %s", err.Error()))
	}

	response := AuthStatusResponse{Authenticated: controller.store.Present(), CookieCount: count}
	if response.Authenticated {
		response.Status = "Ready for private content"
	} else {
		response.Status = "Upload cookies to access private content"
	}

	return ec.JSON(http.StatusOK, response)
}

// addRaw accepts the cookie export as an embedded JSON string, the shape
// produced by copying straight out of browser developer tools.
func (controller *Controller) addRaw(ec echo.Context) error {
	var request RawUploadRequest
	if err := ec.Bind(&request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid body: %s", err.Error()))
	}
	if err := controller.validate.Struct(request); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No cookies provided")
	}

	count, err := controller.store.SaveFromBrowserJSON([]byte(request.RawCookies))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Error processing cookies: %s", err.Error()))
	}

	return ec.JSON(http.StatusOK, CookiesResponse{
		Success:      true,
		Message:      fmt.Sprintf("Successfully converted %d cookies to Netscape format", count),
		CookiesCount: count,
	})
}

func (controller *Controller) cookiesStatus(ec echo.Context) error {
	if !controller.store.Present() {
		return ec.JSON(http.StatusOK, CookiesResponse{Success: false, Message: "No cookies file found"})
	}

	count, err := controller.store.Count()
	if err != nil {
		return ec.JSON(http.StatusOK, CookiesResponse{Success: false, Message: fmt.Sprintf("Error reading cookies status: %s", err.Error())})
	}

	return ec.JSON(http.StatusOK, CookiesResponse{
		Success:      true,
		Message:      fmt.Sprintf("Cookies file exists with %d entries", count),
		CookiesCount: count,
	})
}

// validateCookies exercises the extraction backend with the stored cookie
// file against a known-public post to judge whether the credentials are
// usable.
func (controller *Controller) validateCookies(ec echo.Context) error {
	path, exists := controller.store.FilePath()
	if !exists {
		return ec.JSON(http.StatusOK, CookiesResponse{Success: false, Message: "No cookies file found. Please add cookies first."})
	}

	err := controller.prober.Probe(ec.Request().Context(), path)
	if err == nil {
		return ec.JSON(http.StatusOK, CookiesResponse{Success: true, Message: "Cookies are valid and working!"})
	}

	var (
		authRequired *extract.AuthRequiredError
		denied       *extract.AccessDeniedError
	)
	switch {
	case errors.As(err, &authRequired):
		return ec.JSON(http.StatusOK, CookiesResponse{Success: false, Message: "Cookies are invalid or expired. Please update your cookies."})
	case errors.As(err, &denied):
		return ec.JSON(http.StatusOK, CookiesResponse{Success: false, Message: "Cookies are loaded but may not have sufficient permissions for private content"})
	default:
		return ec.JSON(http.StatusOK, CookiesResponse{Success: true, Message: "Cookies are loaded (validation inconclusive but likely working)"})
	}
}
