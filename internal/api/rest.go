package api

import (
	"context"
	"sync"

	"github.com/RaihanSardarUI/Twitter/internal/api/auth"
	"github.com/RaihanSardarUI/Twitter/internal/api/system"
	"github.com/RaihanSardarUI/Twitter/internal/api/videos"
	"github.com/RaihanSardarUI/Twitter/pkg/logger"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var log = logger.Get("API")

type (
	RestConfig struct {
		Host string `yaml:"host" env:"HOST_ADDR" env-default:"0.0.0.0"`
		Port string `yaml:"port" env:"HOST_PORT" env-default:"8000"`
	}

	controller interface {
		SetRoutes(*echo.Group)
	}

	// The RestGateway is a thin wrapper around the Echo HTTP router. Its
	// sole responsibility is to create the routes the service exposes and
	// delegate each request into the relevant controller.
	RestGateway struct {
		config           *RestConfig
		ec               *echo.Echo
		videoController  controller
		authController   controller
		systemController controller
	}
)

// NewRestGateway constructs the Echo router and populates it with the
// routes defined by the various controllers. Each controller is handed
// only the collaborators it needs.
func NewRestGateway(
	config *RestConfig,
	videoService videos.VideoService,
	cookieStore auth.CookieStore,
	prober auth.BackendProber,
	resultCache system.ResultCache,
) *RestGateway {
	ec := echo.New()
	ec.OnAddRouteHandler = func(host string, route echo.Route, handler echo.HandlerFunc, middleware []echo.MiddlewareFunc) {
		log.Emit(logger.DEBUG, "Registered new route %s %s\n", route.Method, route.Path)
	}
	ec.HidePort = true
	ec.HideBanner = true

	validate := validator.New()
	gateway := &RestGateway{
		config:           config,
		ec:               ec,
		videoController:  videos.New(validate, videoService),
		authController:   auth.New(validate, cookieStore, prober),
		systemController: system.New(resultCache),
	}

	ec.Use(middleware.Logger())
	ec.Use(middleware.Recover())
	ec.Use(middleware.CORS())

	gateway.videoController.SetRoutes(ec.Group(""))
	gateway.authController.SetRoutes(ec.Group(""))
	gateway.systemController.SetRoutes(ec.Group(""))

	return gateway
}

func (gateway *RestGateway) Run(parentCtx context.Context) error {
	ctx, ctxCancel := context.WithCancelCause(parentCtx)
	defer ctxCancel(nil)
	wg := &sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := gateway.ec.Start(gateway.config.Host + ":" + gateway.config.Port); err != nil {
			ctxCancel(err)
		}
	}()

	go func(ec *echo.Echo) {
		<-ctx.Done()
		ec.Close()
	}(gateway.ec)

	wg.Wait()

	// Return the cancellation cause if any. Parent context cancellation is
	// a normal shutdown, not an error to report.
	if cause := context.Cause(ctx); cause != ctx.Err() {
		return cause
	}

	return nil
}
