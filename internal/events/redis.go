package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultChannel is the pub/sub channel events go to when none is configured
const DefaultChannel = "lanes:events"

// RedisPublisher publishes JSON-encoded events on a Redis pub/sub channel
type RedisPublisher struct {
	client  *redis.Client
	channel string
	owned   bool // close the client on Close
}

// NewRedisPublisher connects to the Redis server at addr and verifies it answers
func NewRedisPublisher(ctx context.Context, addr, channel string) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", addr, err)
	}
	p := NewRedisPublisherFromClient(client, channel)
	p.owned = true
	return p, nil
}

// NewRedisPublisherFromClient wraps an existing client. The caller keeps ownership of it.
func NewRedisPublisherFromClient(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

// Channel returns the pub/sub channel events are published on
func (p *RedisPublisher) Channel() string {
	return p.channel
}

// Publish implements Publisher
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}
	return nil
}

// Close implements Publisher
func (p *RedisPublisher) Close() error {
	if !p.owned {
		return nil
	}
	return p.client.Close()
}
