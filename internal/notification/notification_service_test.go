package notification_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-portal/internal/messaging/kafka"
	"go-portal/internal/notification"
	notificationerrors "go-portal/internal/notification/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeNotificationRepository struct {
	withTxFn      func(tx *sql.Tx) notification.Repository
	createFn      func(ctx context.Context, n *notification.Notification) error
	listByUserFn  func(ctx context.Context, userID string, unreadOnly bool) ([]notification.Notification, error)
	markReadFn    func(ctx context.Context, userID, id string) (int64, error)
	markAllReadFn func(ctx context.Context, userID string) error
	deleteFn      func(ctx context.Context, userID, id string) (int64, error)
}

func (f *fakeNotificationRepository) WithTx(tx *sql.Tx) notification.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeNotificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if f.createFn != nil {
		return f.createFn(ctx, n)
	}
	return nil
}

func (f *fakeNotificationRepository) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]notification.Notification, error) {
	if f.listByUserFn != nil {
		return f.listByUserFn(ctx, userID, unreadOnly)
	}
	return nil, nil
}

func (f *fakeNotificationRepository) MarkRead(ctx context.Context, userID, id string) (int64, error) {
	if f.markReadFn != nil {
		return f.markReadFn(ctx, userID, id)
	}
	return 1, nil
}

func (f *fakeNotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	if f.markAllReadFn != nil {
		return f.markAllReadFn(ctx, userID)
	}
	return nil
}

func (f *fakeNotificationRepository) Delete(ctx context.Context, userID, id string) (int64, error) {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, userID, id)
	}
	return 1, nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
	created  []kafka.OutboxEvent
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type dispatcherDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	repo    *fakeNotificationRepository
	outbox  *fakeOutboxRepository
	service notification.Service
}

func setupDispatcherTest(t *testing.T) *dispatcherDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := &fakeNotificationRepository{}
	outbox := &fakeOutboxRepository{}

	return &dispatcherDeps{
		db:      db,
		sqlMock: sqlMock,
		repo:    repo,
		outbox:  outbox,
		service: notification.NewService(db, repo, outbox),
	}
}

func TestDispatcher_Notify(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	refID := uuid.New()
	refType := "leave_request"

	t.Run("persists notification row and outbox event together", func(t *testing.T) {
		deps := setupDispatcherTest(t)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		var created *notification.Notification
		deps.repo.createFn = func(ctx context.Context, n *notification.Notification) error {
			created = n
			return nil
		}

		deps.service.Notify(ctx, notification.NotifyInput{
			UserID:        userID,
			Type:          notification.TypeLeaveApproved,
			Title:         "Pengajuan disetujui",
			Message:       "Pengajuan LV-2026-000042 disetujui penuh",
			ReferenceID:   &refID,
			ReferenceType: &refType,
		})

		assert.NotNil(t, created)
		assert.Equal(t, userID, created.UserID)
		assert.Equal(t, notification.TypeLeaveApproved, created.Type)

		assert.Len(t, deps.outbox.created, 1)
		event := deps.outbox.created[0]
		assert.Equal(t, notification.QueuedTopic, event.Topic)
		assert.Equal(t, notification.QueuedEventType, event.EventType)
		assert.Equal(t, "notification", event.AggregateType)
		assert.Equal(t, kafka.OutboxStatusPending, event.Status)
		assert.Contains(t, string(event.Payload), userID.String())

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("persist failure is swallowed", func(t *testing.T) {
		deps := setupDispatcherTest(t)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.createFn = func(ctx context.Context, n *notification.Notification) error {
			return errors.New("db down")
		}

		// tidak ada panic, tidak ada error keluar
		deps.service.Notify(ctx, notification.NotifyInput{
			UserID:  userID,
			Type:    notification.TypeLeaveSubmitted,
			Title:   "Pengajuan terkirim",
			Message: "Pengajuan menunggu persetujuan",
		})

		assert.Empty(t, deps.outbox.created)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("outbox failure rolls back notification row too", func(t *testing.T) {
		deps := setupDispatcherTest(t)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			return errors.New("outbox insert failed")
		}

		deps.service.Notify(ctx, notification.NotifyInput{
			UserID:  userID,
			Type:    notification.TypeLeaveSubmitted,
			Title:   "Pengajuan terkirim",
			Message: "Pengajuan menunggu persetujuan",
		})

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestNotificationService_ReadOps(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("list maps entities", func(t *testing.T) {
		deps := setupDispatcherTest(t)

		deps.repo.listByUserFn = func(ctx context.Context, uid string, unreadOnly bool) ([]notification.Notification, error) {
			assert.Equal(t, userID.String(), uid)
			assert.True(t, unreadOnly)
			return []notification.Notification{
				{ID: uuid.New(), UserID: userID, Type: notification.TypeLeaveProgress, Title: "Progres", Message: "Lolos tahap 1"},
			}, nil
		}

		resp, err := deps.service.ListByUser(ctx, userID.String(), true)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, notification.TypeLeaveProgress, resp[0].Type)
	})

	t.Run("negative mark read of foreign notification", func(t *testing.T) {
		deps := setupDispatcherTest(t)

		deps.repo.markReadFn = func(ctx context.Context, uid, id string) (int64, error) {
			return 0, nil
		}

		err := deps.service.MarkRead(ctx, userID.String(), uuid.New().String())

		assert.ErrorIs(t, err, notificationerrors.ErrNotificationNotFound)
	})

	t.Run("negative mark read with invalid id", func(t *testing.T) {
		deps := setupDispatcherTest(t)

		err := deps.service.MarkRead(ctx, userID.String(), "bukan-uuid")

		assert.ErrorIs(t, err, notificationerrors.ErrInvalidNotificationID)
	})
}
