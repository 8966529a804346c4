package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/LavaJover/shvark-topup-service/internal/domain"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

type KafkaEventSubscriber struct {
	brokers []string
	topic   string
	groupID string
}

// NewKafkaEventSubscriber joins a consumer group of its own, derived from
// groupPrefix, so every instance receives every partition. Each instance
// serves its own SSE clients and needs the whole stream.
func NewKafkaEventSubscriber(brokers []string, topic, groupPrefix string) *KafkaEventSubscriber {
	hostname, _ := os.Hostname()
	return &KafkaEventSubscriber{brokers: brokers, topic: topic, groupID: instanceGroupID(groupPrefix, hostname, uuid.NewString())}
}

func (k *KafkaEventSubscriber) GroupID() string {
	return k.groupID
}

func instanceGroupID(prefix, hostname, instanceID string) string {
	if prefix == "" {
		prefix = "topup-notifier"
	}
	parts := []string{prefix}
	if host := strings.Map(groupRune, hostname); host != "" {
		parts = append(parts, host)
	}
	if len(instanceID) > 8 {
		instanceID = instanceID[:8]
	}
	return strings.Join(append(parts, instanceID), "-")
}

func groupRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
		return r
	default:
		return -1
	}
}

// Subscribe streams decoded events until ctx is cancelled or the reader fails.
func (k *KafkaEventSubscriber) Subscribe(ctx context.Context) (<-chan domain.Event, error) {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     k.brokers,
		Topic:       k.topic,
		GroupID:     k.groupID,
		StartOffset: kafka.LastOffset,
	})
	out := make(chan domain.Event)
	go func() {
		defer close(out)
		defer reader.Close()
		for {
			m, err := reader.ReadMessage(ctx)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					slog.Error("kafka reader stopped", "topic", k.topic, "error", err)
				}
				return
			}
			event, err := decodeEvent(m)
			if err != nil {
				slog.Warn("skipping malformed event", "offset", m.Offset, "error", err)
				continue
			}
			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func decodeEvent(m kafka.Message) (domain.Event, error) {
	var event domain.Event
	if err := json.Unmarshal(m.Value, &event); err != nil {
		return domain.Event{}, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if event.UserID == "" {
		event.UserID = string(m.Key)
	}
	return event, nil
}
