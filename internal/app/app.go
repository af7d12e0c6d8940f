package app

import (
	"errors"
	"io"
	"log/slog"

	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/events"
	boardservice "github.com/thenoetrevino/lanes/internal/services/board"
	cardservice "github.com/thenoetrevino/lanes/internal/services/card"
	columnservice "github.com/thenoetrevino/lanes/internal/services/column"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore

	// Change notifications for other processes
	publisher events.Publisher

	logger  *slog.Logger
	closers []io.Closer

	// Service layer (business logic)
	BoardService  boardservice.Service
	ColumnService columnservice.Service
	CardService   cardservice.Service
}

// New creates a new App with all services initialized.
// Without options events are discarded and board export is disabled.
func New(repo database.DataStore, opts ...Option) *App {
	cfg := &appConfig{
		publisher: events.Nop{},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	for _, wrap := range cfg.wrappers {
		cfg.publisher = wrap(cfg.publisher)
	}

	return &App{
		repo:          repo,
		publisher:     cfg.publisher,
		logger:        cfg.logger,
		closers:       cfg.closers,
		BoardService:  boardservice.NewService(repo, cfg.publisher, cfg.exporter),
		ColumnService: columnservice.NewService(repo, cfg.publisher),
		CardService:   cardservice.NewService(repo, cfg.publisher),
	}
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Logger returns the application logger
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Close releases the publisher and any resources handed over with WithCloser,
// in reverse order of registration.
func (a *App) Close() error {
	var errs []error
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
