package service

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"

	"github.com/hsalamardi/lending-service/pkg/breaker"
)

// Enqueuer publishes domain events for the notification dispatcher.
// Delivery is best-effort: a failed publish must never fail the state
// transition that produced the event.
type Enqueuer interface {
	Enqueue(topic string, v any) error
}

func NewEnqueuer(producer sarama.SyncProducer) Enqueuer {
	return &enqueuerImpl{
		producer: producer,
		cb:       breaker.New(20, 30*time.Second, 0.5, 5),
	}
}

type enqueuerImpl struct {
	producer sarama.SyncProducer
	cb       breaker.Breaker
}

func (q *enqueuerImpl) Enqueue(topic string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	// the breaker keeps a dead broker from stalling every return
	return q.cb.Call(func() error {
		msg := &sarama.ProducerMessage{Topic: topic, Value: sarama.StringEncoder(data)}
		_, _, err := q.producer.SendMessage(msg)
		return err
	})
}

// NopEnqueuer drops events; used when no broker is configured and in tests.
type NopEnqueuer struct{}

func (NopEnqueuer) Enqueue(string, any) error { return nil }
