package container

import (
	"github.com/samber/do"
	"github.com/serroba/shortlink/internal/handlers"
	"github.com/serroba/shortlink/internal/metrics"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

// MetricsPackage provides the Prometheus collectors.
func MetricsPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*metrics.Metrics, error) {
		return metrics.New(), nil
	})
}

// ServicePackage provides the *shortener.Service.
func ServicePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*shortener.Service, error) {
		opts := do.MustInvoke[*Options](i)

		generator, err := shortener.NewCodeGenerator(opts.CodeLength)
		if err != nil {
			return nil, err
		}

		return shortener.NewService(
			do.MustInvoke[shortener.Repository](i),
			generator,
			do.MustInvoke[*zap.Logger](i),
			shortener.WithMaxAttempts(opts.MaxAttempts),
			shortener.WithObserver(do.MustInvoke[*metrics.Metrics](i)),
			shortener.WithReservedCodes(handlers.ReservedCodes...),
		), nil
	})
}
