package notification

import (
	"context"
	"database/sql"
	"encoding/json"

	"go-portal/internal/messaging/kafka"
	notificationerrors "go-portal/internal/notification/errors"
	"go-portal/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotifyInput adalah satu notifikasi untuk satu penerima.
type NotifyInput struct {
	UserID        uuid.UUID
	Type          string
	Title         string
	Message       string
	ReferenceID   *uuid.UUID
	ReferenceType *string
}

// Dispatcher adalah kontrak sempit yang dipakai workflow. Notify dipanggil
// SETELAH transaksi workflow commit dan tidak mengembalikan error: kegagalan
// persist/push di sini dicatat lalu ditelan, tidak pernah membatalkan atau
// me-retry transisi yang memicunya.
//
//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Dispatcher interface {
	Notify(ctx context.Context, input NotifyInput)
}

type Service interface {
	Dispatcher
	ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

func (s *service) Notify(ctx context.Context, input NotifyInput) {
	n := &Notification{
		ID:            uuid.New(),
		UserID:        input.UserID,
		Type:          input.Type,
		Title:         input.Title,
		Message:       input.Message,
		ReferenceID:   input.ReferenceID,
		ReferenceType: input.ReferenceType,
	}

	logger := contextutil.GetLogger(ctx, s.logger)

	if err := s.persist(ctx, n); err != nil {
		logger.Error("notification dispatch failed",
			zap.String("user_id", input.UserID.String()),
			zap.String("type", input.Type),
			zap.Error(err),
		)
		return
	}

	logger.Info("notification queued",
		zap.String("notification_id", n.ID.String()),
		zap.String("user_id", input.UserID.String()),
		zap.String("type", input.Type),
	)
}

// persist menyimpan row notifikasi dan outbox event dalam satu transaksi
// pendek milik dispatcher sendiri, terpisah dari transaksi workflow.
func (s *service) persist(ctx context.Context, n *Notification) error {
	event := QueuedEvent{
		NotificationID: n.ID.String(),
		UserID:         n.UserID.String(),
		Type:           n.Type,
		Title:          n.Title,
		Message:        n.Message,
		CreatedAt:      n.CreatedAt,
	}
	if n.ReferenceID != nil {
		ref := n.ReferenceID.String()
		event.ReferenceID = &ref
	}
	event.ReferenceType = n.ReferenceType

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, n); err != nil {
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "notification",
		AggregateID:   n.ID.String(),
		EventType:     QueuedEventType,
		Topic:         QueuedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]NotificationResponse, error) {
	notifications, err := s.repo.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(notifications), nil
}

func (s *service) MarkRead(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notificationerrors.ErrInvalidNotificationID
	}
	affected, err := s.repo.MarkRead(ctx, userID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notificationerrors.ErrInvalidNotificationID
	}
	affected, err := s.repo.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}
