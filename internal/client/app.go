package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/go-story-sync/internal/adapter"
	"github.com/MKhiriev/go-story-sync/internal/config"
	"github.com/MKhiriev/go-story-sync/internal/host"
	"github.com/MKhiriev/go-story-sync/internal/logger"
	"github.com/MKhiriev/go-story-sync/internal/notify"
	"github.com/MKhiriev/go-story-sync/internal/service"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/internal/tui"
	"github.com/MKhiriev/go-story-sync/internal/workers"
	"github.com/MKhiriev/go-story-sync/models"
)

// App owns the client process: session, sync engine, background workers and
// the terminal UI.
type App struct {
	cfg *config.ClientConfig

	remote     adapter.RemoteSource
	services   *service.ClientServices
	ui         UI
	visibility *host.Visibility
	network    *host.NetworkMonitor

	closers   []io.Closer
	triggerWG sync.WaitGroup

	logger *logger.Logger
}

// NewApp wires the client from cfg. The returned app must be closed.
func NewApp(ctx context.Context, cfg *config.ClientConfig, buildInfo models.AppBuildInfo, log *logger.Logger) (*App, error) {
	app := &App{cfg: cfg, logger: log}

	storages, err := store.NewClientStorages(ctx, cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("create local storage: %w", err)
	}
	app.closers = append(app.closers, storages)

	remote, err := adapter.NewHTTPRemoteSource(cfg.Adapter, log)
	if err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("create remote source: %w", err)
	}
	app.remote = remote

	notifier := tui.NewNotifier()
	dispatcher := notify.MultiDispatcher{notify.NewLogDispatcher(log), notifier}
	if cfg.Notify.RedisURL != "" {
		redisDispatcher, err := notify.NewRedisDispatcher(cfg.Notify.RedisURL, cfg.Notify.Channel)
		if err != nil {
			_ = app.Close()
			return nil, fmt.Errorf("create redis dispatcher: %w", err)
		}
		app.closers = append(app.closers, redisDispatcher)
		dispatcher = append(dispatcher, redisDispatcher)
	}

	app.visibility = host.NewVisibility()
	app.services = service.NewClientServices(storages.LocalStore, remote, dispatcher, app.visibility, cfg.Workers, log)

	prober, err := app.newProber()
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	app.network = host.NewNetworkMonitor(prober, cfg.Workers.ProbeInterval, log)

	ui := tui.New(app.services.AuthService, notifier, buildInfo, log)
	ui.Attach(app.services.StoryService, app.visibility)
	app.ui = ui

	return app, nil
}

func (a *App) newProber() (host.Prober, error) {
	if a.cfg.Adapter.GRPCAddress == "" {
		return adapter.NewHTTPProber(a.remote), nil
	}

	prober, err := adapter.NewGRPCHealthProber(a.cfg.Adapter.GRPCAddress)
	if err != nil {
		return nil, fmt.Errorf("create grpc prober: %w", err)
	}
	a.closers = append(a.closers, prober)
	return prober, nil
}

// Run authenticates, starts the sync engine and blocks in the story feed
// until the user quits or the process is interrupted.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.authenticate(ctx); err != nil {
		if errors.Is(err, tui.ErrUserQuit) {
			return nil
		}
		return err
	}

	controller := a.services.SyncController
	controller.Start(ctx)

	cancelNetwork := a.network.Subscribe(func(online bool) {
		if online {
			controller.Trigger(ctx, models.TriggerNetworkOnline)
			return
		}
		controller.Trigger(ctx, models.TriggerNetworkOffline)
	})
	defer cancelNetwork()

	cancelVisibility := a.visibility.Subscribe(func(visible bool) {
		if visible {
			a.triggerAsync(ctx, models.TriggerVisibilityRegained)
		}
	})
	defer cancelVisibility()

	background := workers.NewWorkers(a.services.SyncJob, a.network)
	if url := a.cfg.Adapter.StreamURL; url != "" {
		background.Add(adapter.NewStreamListener(url, a.remote.Token, func(event models.StoryEvent) {
			a.logger.Debug().
				Str("func", "App.Run").
				Str("event", string(event.Type)).
				Str("story_id", event.StoryID).
				Msg("remote change announced")
			a.triggerAsync(ctx, models.TriggerRemoteChanged)
		}, a.logger))
	}
	background.Start(ctx)

	err := a.ui.MainLoop(ctx)

	background.Stop()
	a.triggerWG.Wait()
	controller.Wait()

	return err
}

// authenticate restores the configured session or falls back to the
// interactive login flow.
func (a *App) authenticate(ctx context.Context) error {
	creds := a.cfg.App
	err := a.services.AuthService.EnsureSession(ctx, creds.Token, creds.Email, creds.Password)
	if err == nil {
		return nil
	}

	if !errors.Is(err, service.ErrNoCredentials) &&
		!errors.Is(err, service.ErrWrongPassword) &&
		!errors.Is(err, service.ErrSessionExpired) {
		return fmt.Errorf("restore session: %w", err)
	}

	a.logger.Info().Err(err).Str("func", "App.authenticate").Msg("interactive login required")

	result, err := a.ui.AuthFlow(ctx)
	if err != nil {
		return err
	}

	a.logger.Info().Str("func", "App.authenticate").Str("user_id", result.UserID).Msg("logged in")
	return nil
}

func (a *App) triggerAsync(ctx context.Context, trigger models.SyncTrigger) {
	a.triggerWG.Add(1)
	go func() {
		defer a.triggerWG.Done()
		a.services.SyncController.Trigger(ctx, trigger)
	}()
}

// Close releases storage and network clients.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
