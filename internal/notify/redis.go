package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-story-sync/models"
)

const defaultChannel = "stories:new"

// RedisDispatcher publishes novel stories as JSON on a Redis channel so
// other processes (desktop notifiers, bots) can pick them up.
type RedisDispatcher struct {
	client  *redis.Client
	channel string
}

// NewRedisDispatcher connects lazily to the server at rawURL
// (redis://[:password@]host:port/db).
func NewRedisDispatcher(rawURL, channel string) (*RedisDispatcher, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if channel == "" {
		channel = defaultChannel
	}

	return &RedisDispatcher{client: redis.NewClient(opts), channel: channel}, nil
}

func (d *RedisDispatcher) Notify(ctx context.Context, story models.Story) error {
	payload, err := json.Marshal(models.NewAPIStory(story))
	if err != nil {
		return fmt.Errorf("encode story: %w", err)
	}

	if err = d.client.Publish(ctx, d.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", d.channel, err)
	}
	return nil
}

func (d *RedisDispatcher) Close() error {
	return d.client.Close()
}
