package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/LovationAdmin/giftfinder-api/models"
)

// SearchEventPublisher is the write-behind log for completed searches.
type SearchEventPublisher interface {
	PublishSearchCompleted(ctx context.Context, evt models.SearchEvent) error
	Close() error
}

// SearchNotifier pushes completed searches to the requester's live sessions.
type SearchNotifier interface {
	NotifySearchCompleted(userID string, evt models.SearchEvent)
}

type KafkaSearchPublisher struct {
	writer *kafka.Writer
}

func NewKafkaSearchPublisher(broker, topic string) *KafkaSearchPublisher {
	return &KafkaSearchPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(broker),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

// PublishSearchCompleted keys messages by search id so events of one search
// land on one partition.
func (p *KafkaSearchPublisher) PublishSearchCompleted(ctx context.Context, evt models.SearchEvent) error {
	data, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.SearchID),
		Value: data,
		Time:  evt.CreatedAt,
	})
}

func (p *KafkaSearchPublisher) Close() error {
	return p.writer.Close()
}
