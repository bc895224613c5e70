package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"

	"github.com/vfg2006/sales-kpi-api/internal/config"
	"github.com/vfg2006/sales-kpi-api/internal/domain"
)

//go:generate mockgen -source=publisher.go -destination=mocks/publisher.go -package=mocks

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	RecordCreated = "weekly_record.created"
	RecordDeleted = "weekly_record.deleted"

	eventTypeHeader = "event_type"
	eventVersion    = "v1"
)

// ErrDisabled é devolvido quando nenhum broker foi configurado
var ErrDisabled = errors.New("publicação de eventos desativada")

// RecordEvent é a mensagem publicada a cada alteração de registro
type RecordEvent struct {
	EventID    string               `json:"event_id"`
	Type       string               `json:"type"`
	Version    string               `json:"version"`
	OccurredAt time.Time            `json:"occurred_at"`
	RecordID   string               `json:"record_id"`
	Record     *domain.WeeklyRecord `json:"record,omitempty"`
}

type Publisher interface {
	Enabled() bool
	PublishCreated(ctx context.Context, record domain.WeeklyRecord) error
	PublishDeleted(ctx context.Context, id string) error
	Close() error
}

// messageWriter são as funções do kafka.Writer usadas pelo publisher
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
	now    func() time.Time
}

// NewPublisher cria o publisher Kafka, ou um publisher desativado quando
// não há brokers configurados
func NewPublisher(cfg config.Kafka) Publisher {
	if len(cfg.Brokers) == 0 {
		return disabledPublisher{}
	}

	return newKafkaPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}, time.Now)
}

func newKafkaPublisher(writer messageWriter, now func() time.Time) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, now: now}
}

func (p *KafkaPublisher) Enabled() bool {
	return true
}

func (p *KafkaPublisher) PublishCreated(ctx context.Context, record domain.WeeklyRecord) error {
	return p.publish(ctx, RecordCreated, record.ID, &record)
}

func (p *KafkaPublisher) PublishDeleted(ctx context.Context, id string) error {
	return p.publish(ctx, RecordDeleted, id, nil)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func (p *KafkaPublisher) publish(ctx context.Context, eventType, recordID string, record *domain.WeeklyRecord) error {
	event := RecordEvent{
		EventID:    uuid.New().String(),
		Type:       eventType,
		Version:    eventVersion,
		OccurredAt: p.now().UTC(),
		RecordID:   recordID,
		Record:     record,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar evento")
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:     []byte(recordID),
		Value:   payload,
		Headers: []kafka.Header{{Key: eventTypeHeader, Value: []byte(eventType)}},
	})
	if err != nil {
		return errors.Wrapf(err, "erro ao publicar evento %s", eventType)
	}

	return nil
}

type disabledPublisher struct{}

func (disabledPublisher) Enabled() bool { return false }

func (disabledPublisher) PublishCreated(context.Context, domain.WeeklyRecord) error {
	return ErrDisabled
}

func (disabledPublisher) PublishDeleted(context.Context, string) error {
	return ErrDisabled
}

func (disabledPublisher) Close() error { return nil }
