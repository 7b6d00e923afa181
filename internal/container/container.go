package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
	"github.com/samber/do"
	"github.com/serroba/storylog/internal/handlers"
	"github.com/serroba/storylog/internal/health"
	"github.com/serroba/storylog/internal/middleware"
	"github.com/serroba/storylog/internal/sink"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const requestIDLength = 16

type Options struct {
	Port       int    `default:"8888"     help:"Port to listen on"                               short:"p"`
	WebhookURL string `help:"Spreadsheet webhook that receives forwarded events" short:"w"`
	Secret     string `help:"Shared secret sent with every forwarded event"`
	StaticDir  string `default:"./public" help:"Directory served for every non-API path"         short:"s"`
	LogFormat  string `default:"console"  help:"Log output format (console or json)"`
}

// NewLogger builds a JSON production logger, or a colored console logger for anything else.
func NewLogger(format string) (*zap.Logger, error) {
	var config zap.Config

	if format == "json" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	return config.Build()
}

// LoggerPackage provides the application logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		opts := do.MustInvoke[*Options](i)

		return NewLogger(opts.LogFormat)
	})
}

// SinkPackage provides the spreadsheet webhook sink.
func SinkPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*sink.Webhook, error) {
		opts := do.MustInvoke[*Options](i)

		return sink.NewWebhook(&http.Client{}, opts.WebhookURL, opts.Secret), nil
	})
}

// HTTPPackage provides the router and API with every route registered.
// Paths the API does not own fall through to the static directory.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		opts := do.MustInvoke[*Options](i)
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)
		webhook := do.MustInvoke[*sink.Webhook](i)

		requestID, err := nanoid.Standard(requestIDLength)
		if err != nil {
			return nil, fmt.Errorf("failed to create request id generator: %w", err)
		}

		api := humachi.New(router, handlers.NewConfig("Story Log", "1.0.0"))
		api.UseMiddleware(middleware.RequestID(api, requestID))
		api.UseMiddleware(middleware.RequestMeta(api))

		logHandler := handlers.NewLogHandler(webhook, uuid.NewString, time.Now, logger)
		handlers.RegisterRoutes(api, logHandler)
		health.RegisterRoutes(api, health.NewHandler(webhook, logger))

		assets := http.FileServer(http.Dir(opts.StaticDir))
		router.NotFound(assets.ServeHTTP)
		router.MethodNotAllowed(handlers.MethodNotAllowed(assets))

		if err = webhook.Ping(context.Background()); err != nil {
			logger.Warn("sink is not configured, submissions will fail", zap.Error(err))
		}

		return api, nil
	})
}
