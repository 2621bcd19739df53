package events

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/PlayCourt-BookingService/pkg/metrics"
)

type noopLogger struct{}

func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}

func TestProducer_RecordsPublishMetrics(t *testing.T) {
	m := metrics.New("test-events")
	p := NewProducer([]string{"localhost:9092"}, "test-topic", m, noopLogger{})
	defer p.Close()

	p.recordPublish(EventBookingCreated, statusSuccess)
	p.recordPublish(EventBookingCreated, statusSuccess)
	p.recordPublish(EventBookingCreated, statusError)
	p.recordPublish(EventSlotBlocked, statusSuccess)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.EventsPublishedTotal.WithLabelValues(EventBookingCreated, statusSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublishedTotal.WithLabelValues(EventBookingCreated, statusError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublishedTotal.WithLabelValues(EventSlotBlocked, statusSuccess)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.EventsPublishedTotal.WithLabelValues(EventBookingCancelled, statusSuccess)))
}

// Метрики опциональны: без коллектора продюсер работает как раньше
func TestProducer_NilMetrics(t *testing.T) {
	p := NewProducer([]string{"localhost:9092"}, "test-topic", nil, noopLogger{})
	defer p.Close()

	assert.NotPanics(t, func() {
		p.recordPublish(EventBookingCreated, statusSuccess)
	})
}
