package worker

import (
	"ModelHub/config"
	"ModelHub/internal/mq"
	"ModelHub/internal/repo"
	"ModelHub/internal/service"
	"ModelHub/internal/task"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/time/rate"
)

type dlqMessage struct {
	StorageKey string    `json:"storage_key"`
	Attempt    int       `json:"attempt"`
	Error      string    `json:"error"`
	FailedAt   time.Time `json:"failed_at"`
}

type retryPublisher interface {
	PublishRetry(ctx context.Context, body []byte, delay time.Duration) error
	PublishDLQ(ctx context.Context, body []byte) error
}

// RunCleanupWorker consumes storage cleanup tasks and sweeps orphans every
// ReconcileInterval until ctx is done.
func RunCleanupWorker(ctx context.Context) error {
	client, err := mq.Dial()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.DeclareTopology(); err != nil {
		return err
	}

	prefetch := config.AppConfig.RabbitMQPrefetch
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := client.Channel.Qos(prefetch, 0, false); err != nil {
		return err
	}

	deliveries, err := client.Channel.Consume(
		mq.QueueTasks,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	concurrency := config.AppConfig.CleanupConcurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)
	limiter := newLimiter(config.AppConfig.CleanupRate, config.AppConfig.CleanupBurst)

	interval := config.AppConfig.ReconcileInterval
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	go reconcile(ctx)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			go reconcile(ctx)
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("cleanup worker: delivery channel closed")
			}
			if !acquireSlot(ctx, sem) {
				_ = delivery.Nack(false, true)
				return nil
			}
			go func(d amqp.Delivery) {
				defer func() { <-sem }()
				handleCleanupMessage(ctx, client, limiter, d)
			}(delivery)
		}
	}
}

// acquireSlot waits for a free worker slot, giving up when ctx is done.
func acquireSlot(ctx context.Context, sem chan struct{}) bool {
	select {
	case sem <- struct{}{}:
		return true
	case <-ctx.Done():
		return false
	}
}

func newLimiter(perSecond float64, burst int) *rate.Limiter {
	if burst <= 0 {
		burst = 1
	}
	if perSecond <= 0 {
		return rate.NewLimiter(rate.Inf, burst)
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

func reconcile(ctx context.Context) {
	_, err := service.ReconcileStorage(ctx, config.AppConfig.ReconcileGrace)
	if errors.Is(err, repo.ErrLockBusy) {
		slog.Info("reconcile skipped, another worker holds the lock")
		return
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("reconcile storage", "error", err)
	}
}

func handleCleanupMessage(ctx context.Context, client retryPublisher, limiter *rate.Limiter, delivery amqp.Delivery) {
	msg, err := task.DecodeCleanup(delivery.Body)
	if err != nil {
		slog.Error("cleanup worker: invalid message", "error", err)
		_ = delivery.Ack(false)
		return
	}

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			_ = delivery.Nack(false, true)
			return
		}
	}

	if err := task.ProcessCleanup(ctx, msg); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			_ = delivery.Nack(false, true)
			return
		}
		if err := scheduleRetry(ctx, client, msg, err); err != nil {
			slog.Error("cleanup worker: retry schedule failed", "storage_key", msg.StorageKey, "error", err)
			_ = delivery.Nack(false, true)
			return
		}
	}

	_ = delivery.Ack(false)
}

func scheduleRetry(ctx context.Context, client retryPublisher, msg task.CleanupMessage, procErr error) error {
	maxRetry := config.AppConfig.CleanupRetryMax
	if maxRetry < 0 {
		maxRetry = 0
	}
	nextAttempt := msg.Attempt + 1
	if maxRetry == 0 || nextAttempt > maxRetry {
		return markFailed(ctx, client, msg, procErr)
	}

	delay := pickRetryDelay(nextAttempt, config.AppConfig.CleanupRetryDelays)
	msg.Attempt = nextAttempt
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	slog.Warn("cleanup retry scheduled",
		"storage_key", msg.StorageKey,
		"attempt", nextAttempt,
		"delay", delay.String(),
		"error", procErr,
	)
	return client.PublishRetry(ctx, body, delay)
}

func markFailed(ctx context.Context, client retryPublisher, msg task.CleanupMessage, procErr error) error {
	dlq := dlqMessage{
		StorageKey: msg.StorageKey,
		Attempt:    msg.Attempt,
		Error:      procErr.Error(),
		FailedAt:   time.Now(),
	}
	body, err := json.Marshal(dlq)
	if err != nil {
		return err
	}
	slog.Error("cleanup failed permanently", "storage_key", msg.StorageKey, "attempt", msg.Attempt, "error", procErr)
	if err := client.PublishDLQ(ctx, body); err != nil {
		slog.Error("cleanup worker: dlq publish failed", "error", err)
	}
	return nil
}

func pickRetryDelay(attempt int, delays []time.Duration) time.Duration {
	if len(delays) == 0 {
		return 0
	}
	index := attempt - 1
	if index < 0 {
		index = 0
	}
	if index >= len(delays) {
		return delays[len(delays)-1]
	}
	return delays[index]
}
