package container

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/events"
	"github.com/serroba/shortlink/internal/handlers"
	"github.com/serroba/shortlink/internal/health"
	"github.com/serroba/shortlink/internal/messaging"
	"github.com/serroba/shortlink/internal/metrics"
	"github.com/serroba/shortlink/internal/middleware"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

// HTTPPackage provides the router and the huma API with every route registered.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		opts := do.MustInvoke[*Options](i)
		logger := do.MustInvoke[*zap.Logger](i)
		router := do.MustInvoke[*chi.Mux](i)
		m := do.MustInvoke[*metrics.Metrics](i)

		router.Handle("/metrics", m.Handler())

		api := humachi.New(router, handlers.NewConfig("URL Shortener", "1.0.0"))
		api.UseMiddleware(middleware.RequestID, middleware.AccessLog(logger), m.Middleware)

		var eventsChecker health.Checker
		if opts.Events {
			eventsChecker = health.NewRedisChecker(do.MustInvoke[*RedisClient](i).UniversalClient)
		}

		health.RegisterRoutes(api, health.NewHandler(do.MustInvoke[shortener.Repository](i), eventsChecker))

		handlers.RegisterRoutes(api, handlers.NewURLHandler(
			do.MustInvoke[*shortener.Service](i),
			opts.ShortURLBase(),
			do.MustInvoke[messaging.Publish[events.MappingCreatedEvent]](i),
			logger,
		))

		return api, nil
	})
}
