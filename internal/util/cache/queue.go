package cache_utils

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"opensourcetogether/internal/cache"

	"github.com/valkey-io/valkey-go"
)

// ValkeyQueueService is a FIFO over a valkey list: LPUSH to enqueue, BRPOP to dequeue.
type ValkeyQueueService struct {
	client  valkey.Client
	timeout time.Duration
}

func NewValkeyQueueService() *ValkeyQueueService {
	return &ValkeyQueueService{
		client:  cache.GetCache(),
		timeout: DefaultQueueTimeout,
	}
}

func (q *ValkeyQueueService) Enqueue(queueKey string, item any) error {
	data, err := json.Marshal(item)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	return q.client.Do(ctx, q.client.B().Lpush().Key(queueKey).Element(string(data)).Build()).Error()
}

// Requeue puts an already dequeued item back so that it is the next one out.
func (q *ValkeyQueueService) Requeue(queueKey string, data []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	return q.client.Do(ctx, q.client.B().Rpush().Key(queueKey).Element(string(data)).Build()).Error()
}

// DequeueBlocking waits up to timeout for an item. It returns nil, nil when the
// queue stayed empty.
func (q *ValkeyQueueService) DequeueBlocking(queueKey string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout+timeout)
	defer cancel()

	cmd := q.client.B().Brpop().Key(queueKey).Timeout(timeout.Seconds()).Build()
	result := q.client.Do(ctx, cmd)

	if err := result.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, nil
		}
		return nil, err
	}

	// BRPOP returns [key, value]
	arr, err := result.AsStrSlice()
	if err != nil {
		return nil, err
	}

	if len(arr) < 2 {
		return nil, errors.New("unexpected BRPOP reply")
	}

	return []byte(arr[1]), nil
}

func (q *ValkeyQueueService) QueueLength(queueKey string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	result := q.client.Do(ctx, q.client.B().Llen().Key(queueKey).Build())
	if result.Error() != nil {
		return 0, result.Error()
	}

	return result.AsInt64()
}

func (q *ValkeyQueueService) ClearQueue(queueKey string) error {
	ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
	defer cancel()

	return q.client.Do(ctx, q.client.B().Del().Key(queueKey).Build()).Error()
}
