package kafka

import (
	"github.com/IBM/sarama"
)

// EventsTopic carries lending domain events (loan.returned,
// reservation.fulfilled) consumed by the notification dispatcher.
const EventsTopic = "library.events"

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS" default:"localhost:9092"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}
