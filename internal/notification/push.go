package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	pushChannelPrefix = "notify:"
	presenceKeyPrefix = "online:"
)

func PushChannel(userID string) string { return pushChannelPrefix + userID }
func PresenceKey(userID string) string { return presenceKeyPrefix + userID }

// Pusher mendorong notifikasi real-time ke channel aktif user via Redis
// pub/sub. Best effort: user yang tidak online dilewati, error dicatat saja.
type Pusher struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewPusher(rdb *redis.Client, logger ...*zap.Logger) *Pusher {
	l := zap.L().Named("notification.pusher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.pusher")
	}
	return &Pusher{rdb: rdb, logger: l}
}

func (p *Pusher) Push(ctx context.Context, event QueuedEvent) error {
	online, err := p.rdb.Exists(ctx, PresenceKey(event.UserID)).Result()
	if err != nil {
		return fmt.Errorf("check presence: %w", err)
	}
	if online == 0 {
		p.logger.Debug("user offline, skip push",
			zap.String("user_id", event.UserID),
			zap.String("notification_id", event.NotificationID),
		)
		return nil
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	if err := p.rdb.Publish(ctx, PushChannel(event.UserID), payload).Err(); err != nil {
		return fmt.Errorf("publish: %w", err)
	}

	p.logger.Info("notification pushed",
		zap.String("user_id", event.UserID),
		zap.String("notification_id", event.NotificationID),
	)
	return nil
}
