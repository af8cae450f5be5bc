package app

import (
	"errors"
	"log/slog"

	"github.com/amirasaad/payportal/pkg/cache"
	"github.com/amirasaad/payportal/pkg/config"
	"github.com/amirasaad/payportal/pkg/eventbus"
	"github.com/amirasaad/payportal/pkg/provider"
	"github.com/amirasaad/payportal/pkg/repository"
	"github.com/amirasaad/payportal/pkg/service/audit"
	"github.com/amirasaad/payportal/pkg/service/auth"
	"github.com/amirasaad/payportal/pkg/service/directory"
	"github.com/amirasaad/payportal/pkg/service/exchange"
	"github.com/amirasaad/payportal/pkg/service/transfer"
)

// Deps contains the infrastructure the services are built on.
type Deps struct {
	Uow          repository.UnitOfWork
	RateProvider provider.ExchangeRate
	// RateCache may be nil to disable rate caching.
	RateCache cache.ExchangeRateCache
	Lockout   cache.LockoutStore
	EventBus  eventbus.Bus
	Logger    *slog.Logger

	closers []func() error
}

// AddCloser registers fn to run on Close.
func (d *Deps) AddCloser(fn func() error) {
	d.closers = append(d.closers, fn)
}

// Close releases resources in reverse registration order.
func (d *Deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i]())
	}
	d.closers = nil
	return errors.Join(errs...)
}

type App struct {
	Deps             *Deps
	Config           *config.App
	AuditRecorder    *audit.Recorder
	AuthService      *auth.Service
	DirectoryService *directory.Service
	ExchangeService  *exchange.Service
	TransferService  *transfer.Service
}

func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	app.setupEventBus()

	app.AuditRecorder = audit.New(
		deps.Uow,
		cfg.Audit.WriteTimeout,
		cfg.Audit.Retention,
		deps.Logger,
	)
	app.AuthService = auth.New(deps.Uow, cfg.Auth.Jwt, app.AuditRecorder, deps.Logger)
	app.DirectoryService = directory.New(deps.Uow, deps.Logger)
	app.ExchangeService = exchange.New(
		deps.RateProvider,
		deps.RateCache,
		cfg.ExchangeRateCache.TTL,
		deps.Logger,
	)
	app.TransferService = transfer.New(
		deps.Uow,
		app.DirectoryService,
		app.ExchangeService,
		deps.EventBus,
		deps.Logger,
	)
	return app
}
