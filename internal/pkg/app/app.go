package app

import (
	"context"
	"errors"
	"fmt"
	flag "github.com/spf13/pflag"
	"notifwhitelist/internal/app/adapters/hook"
	"notifwhitelist/internal/app/adapters/host"
	router "notifwhitelist/internal/app/adapters/http"
	"notifwhitelist/internal/app/adapters/menu"
	"notifwhitelist/internal/app/adapters/plugin"
	"notifwhitelist/internal/app/infrastructure/config"
	"notifwhitelist/internal/app/infrastructure/storage"
	"notifwhitelist/pkg/logger"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// New loads the configuration, starts the plugin and serves the host bridge and
// settings API until SIGINT or SIGTERM.
func New(f *flag.FlagSet) error {
	path, _ := f.GetString("config")
	cfg, err := config.Load(path, f)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	base := logger.New(logger.Options{File: cfg.App.LogFile})
	base.SetLogLevel(cfg.App.LogLevel)
	log := logger.NewTaggedLogger(base, plugin.Name)

	data, err := storage.New(cfg.Data)
	if err != nil {
		log.Error("Error opening data store", err, "backend", cfg.Data.Backend, "path", cfg.Data.Path)
		return err
	}
	defer data.Close()

	bridge := host.New(log.Sub("host"))
	p := plugin.New(log, data, bridge, hook.NewSurface(bridge.Deliver), menu.NewRegistry(), plugin.Options{
		LinkBase:      cfg.App.LinkBase,
		MaxSoundBytes: int(cfg.Sound.MaxBytes),
	})
	bridge.Attach(p)

	if err := p.Start(); err != nil {
		return fmt.Errorf("start plugin: %w", err)
	}
	defer p.Stop()

	if cfg.App.AuthToken == "" {
		log.Warn("app.auth_token is empty: settings API is open and /metrics is disabled")
	}

	r := router.NewRouter(log.Sub("http"), cfg, p, bridge)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- r.Run() }()

	select {
	case err := <-errCh:
		bridge.Close()
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	bridge.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return <-errCh
}
