package cache_utils

import (
	"context"
	"time"

	"opensourcetogether/internal/cache"

	"github.com/valkey-io/valkey-go"
)

type PubSub struct {
	client  valkey.Client
	timeout time.Duration
}

func NewPubSub() *PubSub {
	return &PubSub{
		client:  cache.GetCache(),
		timeout: DefaultCacheTimeout,
	}
}

func (p *PubSub) Publish(channel string, payload []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	cmd := p.client.B().Publish().Channel(channel).Message(string(payload)).Build()

	return p.client.Do(ctx, cmd).Error()
}

// Subscribe blocks until ctx is cancelled or the subscription breaks, calling
// handler for every message received on channel.
func (p *PubSub) Subscribe(ctx context.Context, channel string, handler func(payload []byte)) error {
	cmd := p.client.B().Subscribe().Channel(channel).Build()

	return p.client.Receive(ctx, cmd, func(msg valkey.PubSubMessage) {
		handler([]byte(msg.Message))
	})
}
