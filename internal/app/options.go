package app

import (
	"io"
	"log/slog"

	"github.com/thenoetrevino/lanes/internal/events"
	boardservice "github.com/thenoetrevino/lanes/internal/services/board"
)

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	publisher events.Publisher
	exporter  boardservice.Exporter
	logger    *slog.Logger
	closers   []io.Closer
	wrappers  []func(events.Publisher) events.Publisher
}

// WithEventPublisher sets the event publisher for the application
func WithEventPublisher(p events.Publisher) Option {
	return func(cfg *appConfig) {
		if p != nil {
			cfg.publisher = p
		}
	}
}

// WithExporter enables board exports
func WithExporter(e boardservice.Exporter) Option {
	return func(cfg *appConfig) {
		cfg.exporter = e
	}
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithCloser hands a resource to the App; it is closed by App.Close
func WithCloser(c io.Closer) Option {
	return func(cfg *appConfig) {
		cfg.closers = append(cfg.closers, c)
	}
}

// WithPublisherWrapper decorates whichever publisher the App ends up with.
// Wrappers apply in the order given.
func WithPublisherWrapper(wrap func(events.Publisher) events.Publisher) Option {
	return func(cfg *appConfig) {
		cfg.wrappers = append(cfg.wrappers, wrap)
	}
}
