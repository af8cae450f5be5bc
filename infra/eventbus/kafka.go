package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/amirasaad/payportal/pkg/eventbus"
	"github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// KafkaEventBus publishes events to a single Kafka topic keyed by event
// type. Registered handlers run in-process after a successful write.
type KafkaEventBus struct {
	writer   messageWriter
	topic    string
	handlers map[string][]eventbus.HandlerFunc
	mu       sync.RWMutex
	logger   *slog.Logger
}

// NewWithKafka creates a Kafka-backed event bus.
// brokers: comma-separated list (e.g. "localhost:9092,localhost:9093").
func NewWithKafka(brokers, topic string, logger *slog.Logger) (*KafkaEventBus, error) {
	parsedBrokers := parseBrokers(brokers)
	if len(parsedBrokers) == 0 {
		return nil, fmt.Errorf("kafka event bus: brokers are required")
	}
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("kafka event bus: topic is required")
	}
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(parsedBrokers...),
		Topic:                  topic,
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
		Balancer:               &kafka.Hash{},
		WriteTimeout:           10 * time.Second,
	}
	logger.Info("Kafka event bus initialized", "brokers", parsedBrokers, "topic", topic)
	return newKafkaEventBus(writer, topic, logger), nil
}

func newKafkaEventBus(w messageWriter, topic string, logger *slog.Logger) *KafkaEventBus {
	return &KafkaEventBus{
		writer:   w,
		topic:    topic,
		handlers: make(map[string][]eventbus.HandlerFunc),
		logger:   logger.With("bus", "kafka"),
	}
}

// Register registers a local handler for a specific event type.
func (b *KafkaEventBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit writes the event envelope to Kafka, then runs local handlers.
func (b *KafkaEventBus) Emit(ctx context.Context, event eventbus.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka event bus: marshal payload: %w", err)
	}
	value, err := json.Marshal(envelope{Type: event.Type(), Payload: payload})
	if err != nil {
		return fmt.Errorf("kafka event bus: marshal envelope: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(event.Type()),
		Value: value,
		Time:  time.Now(),
	}
	if err := b.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka event bus: publish failed: %w", err)
	}

	b.mu.RLock()
	handlers := append([]eventbus.HandlerFunc(nil), b.handlers[event.Type()]...)
	b.mu.RUnlock()
	dispatch(ctx, b.logger, handlers, event)
	return nil
}

// Close flushes and closes the underlying writer.
func (b *KafkaEventBus) Close() error {
	if b == nil || b.writer == nil {
		return nil
	}
	return b.writer.Close()
}

func parseBrokers(brokers string) []string {
	parts := strings.Split(brokers, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

var _ eventbus.Bus = (*KafkaEventBus)(nil)
