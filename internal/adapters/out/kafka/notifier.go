// Package kafka publishes notification intents to a Kafka topic, where a
// downstream delivery service turns them into push or email.
package kafka

import (
	"context"
	"encoding/json"
	"time"

	"mealmarket/internal/core/ports"

	"github.com/IBM/sarama"
)

// notificationMessage is the wire format published to the topic.
type notificationMessage struct {
	RecipientKind string `json:"recipient_kind"`
	RecipientID   string `json:"recipient_id"`
	Kind          string `json:"kind"`
	Title         string `json:"title"`
	Message       string `json:"message"`
}

// SaramaNotificationSink implements NotificationSink over a synchronous
// Kafka producer. Messages are keyed by recipient so per-recipient
// ordering is preserved within a partition.
type SaramaNotificationSink struct {
	producer sarama.SyncProducer
	topic    string
}

// NewSaramaNotificationSink creates a sink publishing to the given topic.
func NewSaramaNotificationSink(brokers []string, topic string) (*SaramaNotificationSink, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return &SaramaNotificationSink{
		producer: producer,
		topic:    topic,
	}, nil
}

// Emit publishes the notification intent to the topic.
func (s *SaramaNotificationSink) Emit(_ context.Context, notification ports.Notification) error {
	payload, err := json.Marshal(notificationMessage{
		RecipientKind: string(notification.RecipientKind),
		RecipientID:   notification.RecipientID.String(),
		Kind:          string(notification.Kind),
		Title:         notification.Title,
		Message:       notification.Message,
	})
	if err != nil {
		return err
	}

	_, _, err = s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(notification.RecipientID.String()),
		Value: sarama.ByteEncoder(payload),
	})
	return err
}

// Close shuts down the underlying producer.
func (s *SaramaNotificationSink) Close() error {
	return s.producer.Close()
}
