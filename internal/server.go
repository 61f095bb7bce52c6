package internal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/RaihanSardarUI/Twitter/internal/api"
	"github.com/RaihanSardarUI/Twitter/internal/cache"
	"github.com/RaihanSardarUI/Twitter/internal/cookies"
	"github.com/RaihanSardarUI/Twitter/internal/extract"
	"github.com/RaihanSardarUI/Twitter/internal/video"
	"github.com/RaihanSardarUI/Twitter/pkg/logger"
)

var log = logger.Get("Core")

// RunnableService is implemented by long lived components that the server
// spawns and supervises for its lifetime.
type RunnableService interface {
	Run(ctx context.Context) error
}

// Server is the top level component of the application. It wires the
// extractor, cookie store and caches together and supervises the
// services that expose them.
type Server interface {
	Run(ctx context.Context) error
}

type serverImpl struct {
	restGateway   RunnableService
	cookieWatcher RunnableService
}

// New constructs the server and all of its collaborators from the
// provided configuration.
func New(config ServerConfig) Server {
	resultCache := cache.New[*video.Result]()

	cookieStore := cookies.NewStore(config.Cookies)
	bindCacheInvalidation(cookieStore, resultCache)

	extractor := extract.NewYtDlp(config.Extractor)
	videoService := video.NewService(extractor, cookieStore, resultCache)

	return &serverImpl{
		restGateway:   api.NewRestGateway(&config.API, videoService, cookieStore, extractor, resultCache),
		cookieWatcher: cookies.NewWatcher(config.Cookies, cookieStore),
	}
}

// bindCacheInvalidation drops every cached result whenever the stored
// credentials change. A cookie upload can turn previously failing
// restricted posts fetchable, and a clear can do the reverse, so records
// extracted under the old credentials must not outlive them.
func bindCacheInvalidation(cookieStore *cookies.Store, resultCache *cache.Store[*video.Result]) {
	cookieStore.OnChange(func() {
		log.Emit(logger.INFO, "Session cookies changed, invalidating cached results\n")
		resultCache.InvalidateAll()
	})
}

// Run spawns the server services and blocks until either the context is
// cancelled, or one of the services crashes.
func (server *serverImpl) Run(parent context.Context) error {
	ctx, cancel := context.WithCancelCause(parent)
	defer cancel(nil)

	wg := &sync.WaitGroup{}
	crashHandler := func(label string, err error) {
		if err == nil || errors.Is(err, ctx.Err()) {
			return
		}

		log.Emit(logger.ERROR, "Service '%s' has reported an error: %v\n", label, err)
		cancel(fmt.Errorf("service %s crashed: %w", label, err))
	}

	server.spawnAsyncService(ctx, wg, crashHandler, "cookie-watcher", server.cookieWatcher)
	server.spawnAsyncService(ctx, wg, crashHandler, "rest-gateway", server.restGateway)

	<-ctx.Done()
	wg.Wait()

	if cause := context.Cause(ctx); cause != nil && !errors.Is(cause, parent.Err()) {
		return cause
	}

	return nil
}

func (server *serverImpl) spawnAsyncService(ctx context.Context, wg *sync.WaitGroup, crashHandler func(string, error), label string, service RunnableService) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		crashHandler(label, service.Run(ctx))
	}()
}
