package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Publisher sends ledger events. The zero-config case is NopPublisher so the
// ledger service never branches on whether Kafka is wired.
type Publisher interface {
	Publish(ctx context.Context, topic string, key int64, payload any)
	Close() error
}

type kafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher builds a publisher over the given broker list
// ("host:port,host:port"). The short batch timeout keeps the synchronous
// write off the request latency path; the default 1s batching would stall
// every ledger response.
func NewKafkaPublisher(brokers string) Publisher {
	addrs := strings.Split(brokers, ",")

	w := &kafka.Writer{
		Addr:                   kafka.TCP(addrs...),
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		ReadTimeout:            10 * time.Second,
		WriteTimeout:           10 * time.Second,
	}

	return &kafkaPublisher{writer: w}
}

func (p *kafkaPublisher) Publish(ctx context.Context, topic string, key int64, payload any) {
	b, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal event", "topic", topic, "error", err)
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(strconv.FormatInt(key, 10)),
		Value: b,
	})
	if err != nil {
		slog.Error("publish event", "topic", topic, "error", err)
	}
}

func (p *kafkaPublisher) Close() error {
	err := p.writer.Close()
	if err != nil {
		return fmt.Errorf("close kafka writer: %w", err)
	}

	return nil
}

// NopPublisher drops all events.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, int64, any) {}
func (NopPublisher) Close() error                                { return nil }
