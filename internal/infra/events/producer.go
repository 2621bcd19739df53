package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/PlayCourt-BookingService/pkg/metrics"
)

var (
	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("events: failed to publish event")
)

// Значения метки status метрики events_published_total
const (
	statusSuccess = "success"
	statusError   = "error"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Producer публикует доменные события в Kafka.
// События отправляются по принципу fire-and-forget: вызывающая сторона
// логирует ошибку и продолжает работу, успешная операция никогда
// не откатывается из-за сбоя публикации.
type Producer struct {
	writer  *kafka.Writer
	metrics *metrics.Metrics
	log     Logger
}

// NewProducer создает продюсер событий.
// m может быть nil, если сбор метрик выключен в конфигурации.
func NewProducer(brokers []string, topic string, m *metrics.Metrics, log Logger) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{}, // Партиционирование по ключу сохраняет порядок событий бронирования
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 10 * time.Millisecond,
		WriteTimeout: 5 * time.Second,
	}

	return &Producer{
		writer:  writer,
		metrics: m,
		log:     log,
	}
}

// Emit публикует событие с указанным типом и полезной нагрузкой.
// key определяет партицию (обычно ID бронирования или площадки).
func (p *Producer) Emit(ctx context.Context, eventType string, key string, payload interface{}) error {
	envelope := Envelope{
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	value, err := json.Marshal(envelope)
	if err != nil {
		p.recordPublish(eventType, statusError)
		return fmt.Errorf("%w: marshal %s: %v", ErrPublish, eventType, err)
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(eventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.recordPublish(eventType, statusError)
		return fmt.Errorf("%w: write %s: %v", ErrPublish, eventType, err)
	}

	p.recordPublish(eventType, statusSuccess)
	p.log.Info("Emit: published event type=%s key=%s", eventType, key)
	return nil
}

func (p *Producer) recordPublish(eventType, status string) {
	if p.metrics == nil {
		return
	}
	p.metrics.EventsPublishedTotal.WithLabelValues(eventType, status).Inc()
}

// Close закрывает соединение с брокером
func (p *Producer) Close() error {
	return p.writer.Close()
}

// NoopSink заглушка для окружений без Kafka (локальная разработка, тесты)
type NoopSink struct{}

// Emit ничего не публикует
func (NoopSink) Emit(_ context.Context, _ string, _ string, _ interface{}) error {
	return nil
}
