package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/thenoetrevino/lanes/internal/config"
	"github.com/thenoetrevino/lanes/internal/database"
	"github.com/thenoetrevino/lanes/internal/events"
	"github.com/thenoetrevino/lanes/internal/snapshot"
)

// Bootstrap opens the database and connects the optional redis publisher and
// S3 exporter described by cfg. The returned App owns all of them. extra is
// applied after the options derived from cfg.
//
// Both remote dependencies are checked before Bootstrap returns: redis is
// pinged and the export bucket must exist. On failure everything opened so
// far is closed again.
func Bootstrap(ctx context.Context, cfg *config.Config, logger *slog.Logger, extra ...Option) (_ *App, err error) {
	var opened []io.Closer
	defer func() {
		if err == nil {
			return
		}
		for i := len(opened) - 1; i >= 0; i-- {
			if cerr := opened[i].Close(); cerr != nil {
				logger.Warn("failed to release resource after bootstrap error", "error", cerr)
			}
		}
	}()

	db, err := database.Open(ctx, cfg.Database.Path, cfg.Database.BusyTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	opened = append(opened, db)

	opts := []Option{WithLogger(logger), WithCloser(db)}

	if cfg.Events.Enabled() {
		publisher, err := events.NewRedisPublisher(ctx, cfg.Events.RedisAddr, cfg.Events.Channel)
		if err != nil {
			return nil, err
		}
		opened = append(opened, publisher)
		opts = append(opts, WithEventPublisher(publisher))
		logger.Debug("publishing events", "redis", cfg.Events.RedisAddr, "channel", publisher.Channel())
	}

	if cfg.S3.Enabled() {
		client, err := snapshot.NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		exporter := snapshot.NewExporter(client, cfg.S3.Bucket, cfg.S3.Prefix)
		if err := exporter.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("board exports unavailable: %w", err)
		}
		opts = append(opts, WithExporter(exporter))
		logger.Debug("board exports enabled", "bucket", cfg.S3.Bucket)
	}

	return New(database.NewRepository(db), append(opts, extra...)...), nil
}
