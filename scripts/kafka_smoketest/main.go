package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	infra_eventbus "github.com/amirasaad/payportal/infra/eventbus"
	"github.com/amirasaad/payportal/pkg/config"
	"github.com/amirasaad/payportal/pkg/domain/events"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// RunSmokeTest publishes a synthetic Transaction.Created event through the
// Kafka bus and reads it back from the configured topic.
func RunSmokeTest(ctx context.Context, cfg *config.EventBus, logger *slog.Logger) error {
	brokers := strings.Split(cfg.Brokers, ",")

	dialer := &kafka.Dialer{Timeout: 5 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", strings.TrimSpace(brokers[0]))
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}
	err = conn.CreateTopics(kafka.TopicConfig{Topic: cfg.Topic, NumPartitions: 1, ReplicationFactor: 1})
	_ = conn.Close()
	if err != nil && !strings.Contains(strings.ToLower(err.Error()), "already exists") {
		return fmt.Errorf("create topic %s: %w", cfg.Topic, err)
	}
	logger.Info("topic ready", "topic", cfg.Topic)

	bus, err := infra_eventbus.NewWithKafka(cfg.Brokers, cfg.Topic, logger)
	if err != nil {
		return err
	}
	defer bus.Close() //nolint:errcheck

	sent := &events.TransactionEvent{
		EventType:     events.EventTypeTransactionCreated,
		TransactionID: uuid.New(),
		SenderID:      uuid.New(),
		ReceiverID:    uuid.New(),
		Amount:        "1.00",
		Currency:      "USD",
		Status:        "pending",
		OccurredAt:    time.Now().UTC(),
	}
	if err := bus.Emit(ctx, sent); err != nil {
		return err
	}
	logger.Info("produced", "transactionID", sent.TransactionID)

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		GroupID:     "payportal-smoketest-" + sent.TransactionID.String(),
		Topic:       cfg.Topic,
		StartOffset: kafka.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
		MaxWait:     500 * time.Millisecond,
	})
	defer r.Close() //nolint:errcheck

	for {
		msg, err := r.FetchMessage(ctx)
		if err != nil {
			return fmt.Errorf("fetch failed: %w", err)
		}
		_ = r.CommitMessages(ctx, msg)

		var env struct {
			Type    string                  `json:"type"`
			Payload events.TransactionEvent `json:"payload"`
		}
		if err := json.Unmarshal(msg.Value, &env); err != nil {
			logger.Warn("skipping undecodable message", "offset", msg.Offset, "error", err)
			continue
		}
		if env.Payload.TransactionID == sent.TransactionID {
			logger.Info("consumed", "type", env.Type, "offset", msg.Offset)
			logger.Info("kafka smoke test passed")
			return nil
		}
	}
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	cfg := &config.EventBus{
		Brokers: config.GetEnv("EVENT_BUS_BROKERS", "localhost:9092"),
		Topic:   config.GetEnv("EVENT_BUS_TOPIC", "payportal.transactions"),
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := RunSmokeTest(ctx, cfg, logger); err != nil {
		logger.Error("kafka smoke test failed", "error", err)
		os.Exit(1)
	}
}
