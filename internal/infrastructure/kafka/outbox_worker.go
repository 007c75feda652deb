package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/DRSN-tech/hardware-catalog/internal/usecase"
	"github.com/DRSN-tech/hardware-catalog/pkg/e"
	"github.com/DRSN-tech/hardware-catalog/pkg/jitter"
	"github.com/DRSN-tech/hardware-catalog/pkg/logger"
	"github.com/jackc/pgx/v5"
)

const (
	// Сколько ждать NOTIFY, прежде чем самостоятельно проверить outbox
	idleWait         = 30 * time.Second
	reconnectBase    = time.Second
	reconnectMaxWait = 30 * time.Second
)

// OutboxWorker переносит события из outbox_events в Kafka.
// Будится через LISTEN/NOTIFY, при простое сам возвращает зависшие события и дочищает очередь.
type OutboxWorker struct {
	repo      usecase.OutboxRepository
	logger    logger.Logger
	producer  usecase.MessageProducer
	batchSize int
	stop      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	dbConnStr string
}

func NewOutboxWorker(
	repo usecase.OutboxRepository,
	logger logger.Logger,
	producer usecase.MessageProducer,
	batchSize int,
	dbConnStr string,
) *OutboxWorker {
	if batchSize <= 0 {
		batchSize = 10
	}

	return &OutboxWorker{
		repo:      repo,
		logger:    logger,
		producer:  producer,
		batchSize: batchSize,
		stop:      make(chan struct{}),
		dbConnStr: dbConnStr,
	}
}

func (w *OutboxWorker) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)

	w.wg.Add(2)
	go func() {
		defer w.wg.Done()
		defer cancel()

		select {
		case <-w.stop:
		case <-ctx.Done():
		}
	}()

	go func() {
		defer w.wg.Done()

		w.logger.Infof("Draining pending outbox events on startup...")
		w.releaseStuck(ctx)
		w.drain(ctx)

		w.listenOutboxNotifications(ctx)
	}()
}

// Stop останавливает воркер и ждёт завершения текущей пачки.
func (w *OutboxWorker) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
	w.wg.Wait()
}

func (w *OutboxWorker) listenOutboxNotifications(ctx context.Context) {
	var conn *pgx.Conn

	connect := func() error {
		c, err := pgx.Connect(ctx, w.dbConnStr)
		if err != nil {
			return e.Wrap("failed to connect for LISTEN", err)
		}

		if _, err := c.Exec(ctx, "LISTEN "+usecase.OutboxChannel); err != nil {
			_ = c.Close(ctx)
			return e.Wrap("failed to LISTEN", err)
		}

		conn = c
		w.logger.Infof("Subscribed to '%s' channel", usecase.OutboxChannel)
		return nil
	}

	// Переподключение с экспоненциальной задержкой, пока контекст жив
	reconnect := func() bool {
		for attempt := 0; ; attempt++ {
			err := connect()
			if err == nil {
				return true
			}
			w.logger.Warnf("outbox listener connect failed (attempt %d): %v", attempt+1, err)

			select {
			case <-ctx.Done():
				return false
			case <-time.After(jitter.ExponentialBackoff(reconnectBase, reconnectMaxWait, attempt, jitter.DefaultJitter)):
			}
		}
	}

	if !reconnect() {
		return
	}
	defer func() {
		if conn != nil {
			_ = conn.Close(context.Background())
		}
	}()

	for ctx.Err() == nil {
		waitCtx, cancel := context.WithTimeout(ctx, idleWait)
		notif, err := conn.WaitForNotification(waitCtx)
		cancel()

		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, context.DeadlineExceeded) {
				// Пропущенный NOTIFY или упавший воркер: проверяем сами
				w.releaseStuck(ctx)
				w.drain(ctx)
				continue
			}

			w.logger.Warnf("Connection lost: %v. Reconnecting...", err)
			_ = conn.Close(context.Background())
			conn = nil
			if !reconnect() {
				return
			}
			// Пока соединения не было, NOTIFY могли потеряться
			w.drain(ctx)
			continue
		}

		if notif != nil && notif.Channel == usecase.OutboxChannel {
			w.logger.Debugf("Received outbox notification, draining outbox events")
			w.drain(ctx)
		}
	}
}

// drain обрабатывает пачки, пока очередь не опустеет.
func (w *OutboxWorker) drain(ctx context.Context) {
	for ctx.Err() == nil {
		hasMore, err := w.processBatch(ctx)
		if err != nil {
			w.logger.Warnf("Batch processing failed: %v", err)
			return
		}
		if !hasMore {
			return
		}
	}
}

func (w *OutboxWorker) releaseStuck(ctx context.Context) {
	released, err := w.repo.ReleaseStuck(ctx)
	if err != nil {
		w.logger.Warnf("release stuck outbox events failed: %v", err)
		return
	}
	if released > 0 {
		w.logger.Infof("released %d stuck outbox events", released)
	}
}

// processBatch отправляет одну пачку. Событие, которое не удалось отправить, остаётся в processing
// и возвращается в очередь через ReleaseStuck. hasMore == false, если пачка пришла неполной
// или ни одно событие не удалось отправить.
func (w *OutboxWorker) processBatch(ctx context.Context) (bool, error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, w.batchSize)
	if err != nil {
		return false, err
	}

	if len(events) == 0 {
		return false, nil
	}

	sent := 0
	for _, event := range events {
		if err := w.processEvent(ctx, event); err != nil {
			w.logger.Warnf("outbox event %s not published: %v", event.EventID, err)
			continue
		}
		sent++

		if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
			w.logger.Warnf("mark processed failed: %v", err)
		}
	}

	return sent > 0 && len(events) == w.batchSize, nil
}

func (w *OutboxWorker) processEvent(ctx context.Context, event *usecase.OutboxEvent) error {
	if err := w.producer.WriteRawMessage(ctx, usecase.NewWriteRawMessageReq(MessageKey(event), event.Payload)); err != nil {
		if isRetryableError(err) {
			return e.Wrap("Temporary Kafka failure, will retry", err)
		}
		return e.Wrap("Permanent Kafka failure", err)
	}

	return nil
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"leader not available",
		"connection reset",
		"broken pipe",
		"no such host",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}
