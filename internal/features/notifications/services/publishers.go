package notifications_services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	notifications_dto "opensourcetogether/internal/features/notifications/dto"
	cache_utils "opensourcetogether/internal/util/cache"

	"github.com/segmentio/kafka-go"
)

const NotificationsChannel = "ost:notifications"

type EventPublisher interface {
	Publish(ctx context.Context, message *notifications_dto.BroadcastMessage) error
}

// PubSubPublisher feeds the realtime hubs of every API instance.
type PubSubPublisher struct {
	pubSub  *cache_utils.PubSub
	channel string
}

func NewPubSubPublisher(pubSub *cache_utils.PubSub, channel string) *PubSubPublisher {
	return &PubSubPublisher{pubSub: pubSub, channel: channel}
}

func (p *PubSubPublisher) Publish(_ context.Context, message *notifications_dto.BroadcastMessage) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}

	return p.pubSub.Publish(p.channel, payload)
}

// KafkaPublisher streams notification events for consumers outside the API,
// keyed by receiver so one user's events stay ordered.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			WriteTimeout: 5 * time.Second,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, message *notifications_dto.BroadcastMessage) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(message.ReceiverID.String()),
		Value: payload,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// MultiPublisher publishes to every backend and joins their errors.
type MultiPublisher []EventPublisher

func (m MultiPublisher) Publish(ctx context.Context, message *notifications_dto.BroadcastMessage) error {
	var errs []error
	for _, publisher := range m {
		if err := publisher.Publish(ctx, message); err != nil {
			errs = append(errs, fmt.Errorf("%T: %w", publisher, err))
		}
	}

	return errors.Join(errs...)
}

func (m MultiPublisher) Close() error {
	var closeErrs []error
	for _, publisher := range m {
		if closer, ok := publisher.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				closeErrs = append(closeErrs, err)
			}
		}
	}

	return errors.Join(closeErrs...)
}
