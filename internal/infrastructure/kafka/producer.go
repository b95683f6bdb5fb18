package kafka

import (
	"context"
	"fmt"
	"time"

	"habit-analytics/internal/config"
	"habit-analytics/internal/domain/entity"
	"habit-analytics/internal/pkg/logger"
	"habit-analytics/pkg/dates"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes habit events to Kafka
type Producer struct {
	writer messageWriter
	log    *logger.Logger
}

// NewProducer creates a new Kafka producer
func NewProducer(cfg *config.KafkaConfig, log *logger.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		BatchSize:    10,
		BatchTimeout: 10 * time.Millisecond,
		Async:        true,
	}

	p := &Producer{
		writer: writer,
		log:    log,
	}
	// Async writes report delivery only here.
	writer.Completion = p.logCompletion
	return p
}

func (p *Producer) logCompletion(messages []kafka.Message, err error) {
	if err == nil {
		return
	}

	for _, msg := range messages {
		p.log.Error("Failed to deliver habit event",
			"topic", msg.Topic,
			"key", string(msg.Key),
			"event_type", eventType(msg),
			"error", err,
		)
	}
}

func eventType(msg kafka.Message) string {
	for _, h := range msg.Headers {
		if h.Key == "event_type" {
			return string(h.Value)
		}
	}
	return ""
}

// Publish sends the event keyed by user so one user's events stay ordered
func (p *Producer) Publish(ctx context.Context, event *entity.HabitEvent) error {
	data, err := EncodeEvent(event)
	if err != nil {
		return err
	}

	message := kafka.Message{
		Key:   []byte(event.UserID.String()),
		Value: data,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", event.Type, err)
	}

	p.log.Debug("Published habit event", "type", event.Type, "habit_id", event.HabitID, "user_id", event.UserID)
	return nil
}

// Close closes the Kafka producer
func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// EncodeEvent marshals the event as a protobuf Struct
func EncodeEvent(event *entity.HabitEvent) ([]byte, error) {
	payload, err := structpb.NewStruct(map[string]any{
		"id":          event.ID.String(),
		"type":        string(event.Type),
		"habit_id":    event.HabitID.String(),
		"user_id":     event.UserID.String(),
		"date":        event.Date.String(),
		"completed":   event.Completed,
		"streak":      event.Streak,
		"occurred_at": event.OccurredAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build event payload: %w", err)
	}

	data, err := proto.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}
	return data, nil
}

// DecodeEvent is the inverse of EncodeEvent
func DecodeEvent(data []byte) (*entity.HabitEvent, error) {
	var payload structpb.Struct
	if err := proto.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	fields := payload.GetFields()
	str := func(key string) string { return fields[key].GetStringValue() }

	event := &entity.HabitEvent{
		Type:      entity.EventType(str("type")),
		Completed: fields["completed"].GetBoolValue(),
		Streak:    int32(fields["streak"].GetNumberValue()),
	}

	var err error
	if event.ID, err = uuid.Parse(str("id")); err != nil {
		return nil, fmt.Errorf("invalid event id: %w", err)
	}
	if event.HabitID, err = uuid.Parse(str("habit_id")); err != nil {
		return nil, fmt.Errorf("invalid habit id: %w", err)
	}
	if event.UserID, err = uuid.Parse(str("user_id")); err != nil {
		return nil, fmt.Errorf("invalid user id: %w", err)
	}
	if event.Date, err = dates.Parse(str("date")); err != nil {
		return nil, err
	}
	if event.OccurredAt, err = time.Parse(time.RFC3339Nano, str("occurred_at")); err != nil {
		return nil, fmt.Errorf("invalid occurred_at: %w", err)
	}

	return event, nil
}
