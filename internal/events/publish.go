package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/thenoetrevino/lanes/internal/user"
)

// PublishWithRetry attempts to publish an event with retry logic.
// It makes up to maxRetries attempts with exponential backoff.
// Returns the error from the final attempt if all retries fail.
//
// Events are notifications about writes that already committed. A final
// failure is logged here once; callers must not fail the operation on it.
func PublishWithRetry(ctx context.Context, publisher Publisher, event Event, maxRetries int) error {
	if publisher == nil {
		return nil // Silently skip if no publisher (e.g., in tests)
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.Actor == "" {
		event.Actor = user.Actor()
	}

	var lastErr error
	baseDelay := 50 * time.Millisecond

	for attempt := 0; attempt < maxRetries; attempt++ {
		err := publisher.Publish(ctx, event)
		if err == nil {
			if attempt > 0 {
				slog.Debug("event published after retry",
					"attempt", attempt+1,
					"event_type", event.Type,
					"board_id", event.BoardID)
			}
			return nil
		}

		lastErr = err

		// Don't sleep after the last attempt
		if attempt < maxRetries-1 {
			// Exponential backoff: 50ms, 100ms, 200ms
			delay := baseDelay * (1 << attempt)
			slog.Debug("event publish failed, retrying",
				"attempt", attempt+1,
				"max_retries", maxRetries,
				"retry_delay", delay,
				"error", err)
			select {
			case <-ctx.Done():
				lastErr = ctx.Err()
				logPublishFailure(event, attempt+1, lastErr)
				return lastErr
			case <-time.After(delay):
			}
		}
	}

	logPublishFailure(event, maxRetries, lastErr)
	return lastErr
}

func logPublishFailure(event Event, attempts int, err error) {
	slog.Warn("event publish failed",
		"attempts", attempts,
		"event_type", event.Type,
		"board_id", event.BoardID,
		"column_id", event.ColumnID,
		"card_id", event.CardID,
		"error", err)
}
