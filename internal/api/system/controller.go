package system

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

type (
	CacheStatsResponse struct {
		CacheSize    int  `json:"cache_size"`
		CacheEnabled bool `json:"cache_enabled"`
	}

	ResultCache interface {
		Len() int
		InvalidateAll()
	}

	Controller struct {
		cache ResultCache
	}
)

func New(cache ResultCache) *Controller {
	return &Controller{cache: cache}
}

func (controller *Controller) SetRoutes(eg *echo.Group) {
	eg.GET("/", controller.index)
	eg.GET("/cache/stats", controller.cacheStats)
	eg.POST("/cache/clear", controller.cacheClear)
}

func (controller *Controller) index(ec echo.Context) error {
	return ec.JSON(http.StatusOK, map[string]any{
		"message": "Twitter Video Downloader API",
		"endpoints": map[string]string{
			"fetch_video":      "POST /video/fetch",
			"test":             "GET /test?url=<post-url>&adult=<bool>",
			"upload_cookies":   "POST /auth/cookies",
			"clear_cookies":    "DELETE /auth/cookies",
			"auth_status":      "GET /auth/status",
			"add_raw_cookies":  "POST /cookies/add-raw",
			"cookies_status":   "GET /cookies/status",
			"validate_cookies": "POST /cookies/validate",
			"cache_stats":      "GET /cache/stats",
			"cache_clear":      "POST /cache/clear",
		},
	})
}

func (controller *Controller) cacheStats(ec echo.Context) error {
	return ec.JSON(http.StatusOK, CacheStatsResponse{CacheSize: controller.cache.Len(), CacheEnabled: true})
}

func (controller *Controller) cacheClear(ec echo.Context) error {
	size := controller.cache.Len()
	controller.cache.InvalidateAll()

	return ec.JSON(http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Cache cleared. Removed %d entries.", size),
	})
}
