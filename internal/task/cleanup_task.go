package task

import (
	"ModelHub/internal/mq"
	"ModelHub/internal/service"
	"ModelHub/internal/storage"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrInvalidMessage marks a message that can never succeed.
var ErrInvalidMessage = errors.New("invalid cleanup message")

// CleanupMessage is the payload consumed by the cleanup worker.
type CleanupMessage struct {
	StorageKey string    `json:"storage_key"`
	Attempt    int       `json:"attempt"`
	Reason     string    `json:"reason,omitempty"`
	QueuedAt   time.Time `json:"queued_at"`
}

// QueueScheduler publishes failed removals to RabbitMQ.
type QueueScheduler struct{}

var _ service.CleanupScheduler = QueueScheduler{}

// ScheduleCleanup enqueues key for the cleanup worker.
func (QueueScheduler) ScheduleCleanup(ctx context.Context, storageKey, reason string) error {
	body, err := EncodeCleanup(storageKey, reason)
	if err != nil {
		return err
	}
	publisher, err := mq.GetPublisher()
	if err != nil {
		return err
	}
	if err := publisher.PublishTask(ctx, body); err != nil {
		return err
	}
	slog.Info("storage cleanup scheduled", "storage_key", storageKey, "reason", reason)
	return nil
}

// EncodeCleanup builds the first-attempt message body for key.
func EncodeCleanup(storageKey, reason string) ([]byte, error) {
	if !storage.ValidKey(storageKey) {
		return nil, fmt.Errorf("%w: key %q", ErrInvalidMessage, storageKey)
	}
	return json.Marshal(CleanupMessage{
		StorageKey: storageKey,
		Reason:     reason,
		QueuedAt:   time.Now(),
	})
}

// DecodeCleanup parses and validates a message body.
func DecodeCleanup(body []byte) (CleanupMessage, error) {
	var msg CleanupMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return msg, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if !storage.ValidKey(msg.StorageKey) {
		return msg, fmt.Errorf("%w: key %q", ErrInvalidMessage, msg.StorageKey)
	}
	return msg, nil
}

// ProcessCleanup removes the object unless a model row references it again.
func ProcessCleanup(ctx context.Context, msg CleanupMessage) error {
	referenced, err := service.IsStorageKeyReferenced(ctx, msg.StorageKey)
	if err != nil {
		return err
	}
	if referenced {
		slog.Warn("cleanup skipped, key still referenced", "storage_key", msg.StorageKey)
		return nil
	}
	if storage.Default == nil {
		return errors.New("storage not initialized")
	}
	if err := storage.Default.Remove(ctx, msg.StorageKey); err != nil {
		return err
	}
	slog.Info("storage cleanup done", "storage_key", msg.StorageKey, "attempt", msg.Attempt)
	return nil
}
