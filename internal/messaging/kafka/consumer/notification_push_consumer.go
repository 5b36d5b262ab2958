package consumer

import (
	"context"
	"encoding/json"

	"go-portal/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeNotificationQueued membaca event notifikasi dari topic outbox dan
// mendorongnya ke channel aktif user. Push gagal tetap di-commit: pengiriman
// real-time best effort, row notifikasi sudah persisten untuk dibaca nanti.
func ConsumeNotificationQueued(
	ctx context.Context,
	reader *kafkago.Reader,
	pusher *notification.Pusher,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.notification_push")
	log.Info("notification push consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("notification push consumer stopped")
				return
			}
			log.Error("fetch notification message failed", zap.Error(err))
			continue
		}

		var event notification.QueuedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode notification event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := pusher.Push(ctx, event); err != nil {
			log.Error("push notification failed",
				zap.String("notification_id", event.NotificationID),
				zap.String("user_id", event.UserID),
				zap.Error(err),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit notification message failed", zap.Error(err))
		}
	}
}
