package internal

import (
	"path/filepath"
	"testing"

	"github.com/RaihanSardarUI/Twitter/internal/cache"
	"github.com/RaihanSardarUI/Twitter/internal/cookies"
	"github.com/RaihanSardarUI/Twitter/internal/video"
	"github.com/RaihanSardarUI/Twitter/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.SetMinLoggingLevel(logger.FATAL.Level())
}

const browserExport = `[{"domain": ".x.com", "path": "/", "secure": true, "name": "auth_token", "value": "abc123"}]`

func Test_BindCacheInvalidation_CredentialChangesEmptyResultCache(t *testing.T) {
	resultCache := cache.New[*video.Result]()
	cookieStore := cookies.NewStore(cookies.Config{FilePath: filepath.Join(t.TempDir(), "cookies.txt")})
	bindCacheInvalidation(cookieStore, resultCache)

	resultCache.Set(cache.Key("https://x.com/a/status/1", false), &video.Result{Title: "one"})
	resultCache.Set(cache.Key("https://x.com/b/status/2", true), &video.Result{Title: "two"})
	require.Equal(t, 2, resultCache.Len())

	_, err := cookieStore.SaveFromBrowserJSON([]byte(browserExport))
	require.NoError(t, err)
	assert.Zero(t, resultCache.Len(), "cookie upload must drop every cached result")

	resultCache.Set(cache.Key("https://x.com/a/status/1", false), &video.Result{Title: "one"})
	require.Equal(t, 1, resultCache.Len())

	require.NoError(t, cookieStore.Clear())
	assert.Zero(t, resultCache.Len(), "cookie clear must drop every cached result")
}
