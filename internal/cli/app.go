package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/idilsaglam/shoplist/internal/config"
	"github.com/idilsaglam/shoplist/internal/controller"
	"github.com/idilsaglam/shoplist/internal/logging"
	"github.com/idilsaglam/shoplist/internal/store"
)

// app wires config, logging, store and controller for one invocation.
type app struct {
	cfg    *config.Config
	logger *slog.Logger
	store  store.Store
	ctl    *controller.Controller
	closer io.Closer // log file, when logging away from the terminal
}

// openApp builds the stack. When toFile is set, logs go to the configured
// log file instead of logw (the TUI owns the terminal).
func openApp(ctx context.Context, f *rootFlags, logw io.Writer, toFile bool) (*app, error) {
	cfg, err := loadConfig(f)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	if toFile && cfg.Logging.File != "" {
		lf, err := logging.OpenFile(cfg.Logging.File)
		if err != nil {
			return nil, err
		}
		a.closer = lf
		logw = lf
	}
	a.logger = logging.New(cfg.Logging, logw)
	slog.SetDefault(a.logger)

	s, err := store.Open(cfg.Database.Driver, cfg.Database.Path)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.store = s
	a.ctl = controller.New(s, a.logger)

	// New already queued the first load; wait for it so positions are valid.
	if err := a.ctl.Refresh().Wait(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("load list: %w", err)
	}
	return a, nil
}

// Close shuts the controller down, then the store, then the log file.
func (a *app) Close() error {
	var errs []error
	if a.ctl != nil {
		errs = append(errs, a.ctl.Close())
	}
	if a.store != nil {
		errs = append(errs, a.store.Close())
	}
	if a.closer != nil {
		errs = append(errs, a.closer.Close())
	}
	return errors.Join(errs...)
}
