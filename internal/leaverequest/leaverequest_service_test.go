package leaverequest_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-portal/internal/approver"
	"go-portal/internal/leaverequest"
	leaverequesterrors "go-portal/internal/leaverequest/errors"
	"go-portal/internal/notification"
	"go-portal/internal/quota"
	quotamock "go-portal/internal/quota/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fakeLeaveRequestRepository struct {
	withTxFn                func(tx *sql.Tx) leaverequest.Repository
	createFn                func(ctx context.Context, r *leaverequest.LeaveRequest) error
	findByIDForUpdateFn     func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error)
	updateTransitionFn      func(ctx context.Context, r *leaverequest.LeaveRequest) error
	createApprovalRecordFn  func(ctx context.Context, rec *leaverequest.ApprovalRecord) error
	decideApprovalRecordFn  func(ctx context.Context, requestID string, stage int, decision string, notes *string, decidedAt time.Time) error
	findByIDFn              func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error)
	findApprovalRecordFn    func(ctx context.Context, requestID string, stage int) (*leaverequest.ApprovalRecord, error)
	listPendingByApproverFn func(ctx context.Context, approverID string, stage int) ([]leaverequest.LeaveRequest, error)
	listByRequesterFn       func(ctx context.Context, requesterID string) ([]leaverequest.LeaveRequest, error)
}

func (f *fakeLeaveRequestRepository) WithTx(tx *sql.Tx) leaverequest.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRequestRepository) Create(ctx context.Context, r *leaverequest.LeaveRequest) error {
	if f.createFn != nil {
		return f.createFn(ctx, r)
	}
	return nil
}

func (f *fakeLeaveRequestRepository) FindByIDForUpdate(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
	if f.findByIDForUpdateFn != nil {
		return f.findByIDForUpdateFn(ctx, id)
	}
	return nil, sql.ErrNoRows
}

func (f *fakeLeaveRequestRepository) UpdateTransition(ctx context.Context, r *leaverequest.LeaveRequest) error {
	if f.updateTransitionFn != nil {
		return f.updateTransitionFn(ctx, r)
	}
	return nil
}

func (f *fakeLeaveRequestRepository) CreateApprovalRecord(ctx context.Context, rec *leaverequest.ApprovalRecord) error {
	if f.createApprovalRecordFn != nil {
		return f.createApprovalRecordFn(ctx, rec)
	}
	return nil
}

func (f *fakeLeaveRequestRepository) DecideApprovalRecord(ctx context.Context, requestID string, stage int, decision string, notes *string, decidedAt time.Time) error {
	if f.decideApprovalRecordFn != nil {
		return f.decideApprovalRecordFn(ctx, requestID, stage, decision, notes, decidedAt)
	}
	return nil
}

func (f *fakeLeaveRequestRepository) FindByID(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, sql.ErrNoRows
}

func (f *fakeLeaveRequestRepository) FindApprovalRecord(ctx context.Context, requestID string, stage int) (*leaverequest.ApprovalRecord, error) {
	if f.findApprovalRecordFn != nil {
		return f.findApprovalRecordFn(ctx, requestID, stage)
	}
	return nil, sql.ErrNoRows
}

func (f *fakeLeaveRequestRepository) ListPendingByApprover(ctx context.Context, approverID string, stage int) ([]leaverequest.LeaveRequest, error) {
	if f.listPendingByApproverFn != nil {
		return f.listPendingByApproverFn(ctx, approverID, stage)
	}
	return nil, nil
}

func (f *fakeLeaveRequestRepository) ListByRequester(ctx context.Context, requesterID string) ([]leaverequest.LeaveRequest, error) {
	if f.listByRequesterFn != nil {
		return f.listByRequesterFn(ctx, requesterID)
	}
	return nil, nil
}

type fakeApproverService struct {
	eligibleStage1Fn func(ctx context.Context, requester approver.RoleCategory, divisionCode string) ([]approver.Candidate, error)
	eligibleStage2Fn func(ctx context.Context, divisionCode string) ([]approver.Candidate, error)
}

func (f *fakeApproverService) EligibleStage1(ctx context.Context, requester approver.RoleCategory, divisionCode string) ([]approver.Candidate, error) {
	if f.eligibleStage1Fn != nil {
		return f.eligibleStage1Fn(ctx, requester, divisionCode)
	}
	return nil, nil
}

func (f *fakeApproverService) EligibleStage2(ctx context.Context, divisionCode string) ([]approver.Candidate, error) {
	if f.eligibleStage2Fn != nil {
		return f.eligibleStage2Fn(ctx, divisionCode)
	}
	return nil, nil
}

func (f *fakeApproverService) GetUser(ctx context.Context, userID string) (*approver.UserRow, error) {
	return nil, nil
}

type fakeDispatcher struct {
	sent []notification.NotifyInput
}

func (f *fakeDispatcher) Notify(ctx context.Context, input notification.NotifyInput) {
	f.sent = append(f.sent, input)
}

type fakeCounterRepository struct {
	next int64
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, year int, counterType string) (int64, error) {
	f.next++
	return f.next, nil
}

type workflowDeps struct {
	db         *sql.DB
	sqlMock    sqlmock.Sqlmock
	repo       *fakeLeaveRequestRepository
	approvers  *fakeApproverService
	ledger     *quotamock.MockLedger
	dispatcher *fakeDispatcher
	service    leaverequest.Service
}

func setupWorkflowTest(t *testing.T) *workflowDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctrl := gomock.NewController(t)
	repo := &fakeLeaveRequestRepository{}
	approvers := &fakeApproverService{}
	ledger := quotamock.NewMockLedger(ctrl)
	dispatcher := &fakeDispatcher{}

	svc := leaverequest.NewService(db, repo, approvers, ledger, dispatcher, &fakeCounterRepository{})

	return &workflowDeps{
		db:         db,
		sqlMock:    sqlMock,
		repo:       repo,
		approvers:  approvers,
		ledger:     ledger,
		dispatcher: dispatcher,
		service:    svc,
	}
}

func stage1Candidates(ids ...uuid.UUID) []approver.Candidate {
	out := make([]approver.Candidate, len(ids))
	for i, id := range ids {
		out[i] = approver.Candidate{
			UserID:   id,
			Name:     "Atasan",
			RoleName: "MANAGER OPERASIONAL",
			Category: approver.CategoryManager,
		}
	}
	return out
}

func TestWorkflow_Submit(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	approverID := uuid.New()

	actor := leaverequest.Actor{
		ID:           requesterID.String(),
		Name:         "Budi",
		RoleName:     "STAFF GUDANG",
		DivisionCode: "FIN",
	}

	t.Run("annual leave reserves quota and creates stage1 record", func(t *testing.T) {
		deps := setupWorkflowTest(t)

		deps.approvers.eligibleStage1Fn = func(ctx context.Context, requester approver.RoleCategory, divisionCode string) ([]approver.Candidate, error) {
			assert.Equal(t, approver.CategoryStaff, requester)
			assert.Equal(t, "FIN", divisionCode)
			return stage1Candidates(approverID), nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		reserved := quota.NewLeaveQuota(requesterID, 2026, 12)
		_ = reserved.Reserve(3)
		deps.ledger.EXPECT().
			Reserve(gomock.Any(), gomock.Any(), requesterID.String(), 2026, 3).
			Return(reserved, nil)

		var createdRequest *leaverequest.LeaveRequest
		deps.repo.createFn = func(ctx context.Context, r *leaverequest.LeaveRequest) error {
			createdRequest = r
			return nil
		}
		var createdRecord *leaverequest.ApprovalRecord
		deps.repo.createApprovalRecordFn = func(ctx context.Context, rec *leaverequest.ApprovalRecord) error {
			createdRecord = rec
			return nil
		}

		resp, err := deps.service.Submit(ctx, actor, leaverequest.SubmitRequest{
			Kind:             leaverequest.KindAnnualLeave,
			StartDate:        "2026-03-02",
			EndDate:          "2026-03-04",
			Reason:           "Acara keluarga",
			ChosenApproverID: approverID.String(),
		})

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusWaitingStage1, createdRequest.Status)
		assert.Equal(t, 3, createdRequest.TotalDays)
		assert.Equal(t, approverID, *createdRequest.CurrentApproverID)
		assert.Regexp(t, `^LV-2026-\d{6}$`, createdRequest.RequestNumber)

		assert.Equal(t, 1, createdRecord.Stage)
		assert.Equal(t, approverID, createdRecord.ApproverID)
		assert.Equal(t, leaverequest.DecisionPending, createdRecord.Decision)

		assert.NotNil(t, resp.Quota)
		assert.Equal(t, 3, resp.Quota.Pending)

		// dua notifikasi: requester dan approver terpilih
		assert.Len(t, deps.dispatcher.sent, 2)
		assert.Equal(t, notification.TypeLeaveSubmitted, deps.dispatcher.sent[0].Type)
		assert.Equal(t, requesterID, deps.dispatcher.sent[0].UserID)
		assert.Equal(t, notification.TypeLeaveNeedsApproval, deps.dispatcher.sent[1].Type)
		assert.Equal(t, approverID, deps.dispatcher.sent[1].UserID)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("sick leave never touches the ledger", func(t *testing.T) {
		deps := setupWorkflowTest(t)

		deps.approvers.eligibleStage1Fn = func(ctx context.Context, requester approver.RoleCategory, divisionCode string) ([]approver.Candidate, error) {
			return stage1Candidates(approverID), nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		resp, err := deps.service.Submit(ctx, actor, leaverequest.SubmitRequest{
			Kind:             leaverequest.KindSick,
			StartDate:        "2026-03-02",
			EndDate:          "2026-03-03",
			Reason:           "Demam",
			ChosenApproverID: approverID.String(),
		})

		assert.NoError(t, err)
		assert.Nil(t, resp.Quota)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative chosen approver outside eligible set", func(t *testing.T) {
		deps := setupWorkflowTest(t)

		deps.approvers.eligibleStage1Fn = func(ctx context.Context, requester approver.RoleCategory, divisionCode string) ([]approver.Candidate, error) {
			return stage1Candidates(uuid.New()), nil
		}

		_, err := deps.service.Submit(ctx, actor, leaverequest.SubmitRequest{
			Kind:             leaverequest.KindSick,
			StartDate:        "2026-03-02",
			Reason:           "Demam",
			ChosenApproverID: approverID.String(),
		})

		assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidApprover)
		assert.Empty(t, deps.dispatcher.sent)
	})

	t.Run("negative no approver configured", func(t *testing.T) {
		deps := setupWorkflowTest(t)

		_, err := deps.service.Submit(ctx, actor, leaverequest.SubmitRequest{
			Kind:             leaverequest.KindSick,
			StartDate:        "2026-03-02",
			Reason:           "Demam",
			ChosenApproverID: approverID.String(),
		})

		assert.ErrorIs(t, err, leaverequesterrors.ErrNoApproverConfigured)
	})

	t.Run("negative quota exhausted rolls back", func(t *testing.T) {
		deps := setupWorkflowTest(t)

		deps.approvers.eligibleStage1Fn = func(ctx context.Context, requester approver.RoleCategory, divisionCode string) ([]approver.Candidate, error) {
			return stage1Candidates(approverID), nil
		}

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.ledger.EXPECT().
			Reserve(gomock.Any(), gomock.Any(), requesterID.String(), 2026, 5).
			Return(nil, assert.AnError)

		_, err := deps.service.Submit(ctx, actor, leaverequest.SubmitRequest{
			Kind:             leaverequest.KindAnnualLeave,
			StartDate:        "2026-03-02",
			EndDate:          "2026-03-06",
			Reason:           "Liburan",
			ChosenApproverID: approverID.String(),
		})

		assert.Error(t, err)
		assert.Empty(t, deps.dispatcher.sent)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative single date kind with range", func(t *testing.T) {
		deps := setupWorkflowTest(t)

		_, err := deps.service.Submit(ctx, actor, leaverequest.SubmitRequest{
			Kind:             leaverequest.KindLateArrival,
			StartDate:        "2026-03-02",
			EndDate:          "2026-03-03",
			Reason:           "Ban bocor",
			ChosenApproverID: approverID.String(),
		})

		assert.ErrorIs(t, err, leaverequesterrors.ErrSingleDateRequired)
	})

	t.Run("negative end before start", func(t *testing.T) {
		deps := setupWorkflowTest(t)

		_, err := deps.service.Submit(ctx, actor, leaverequest.SubmitRequest{
			Kind:             leaverequest.KindAnnualLeave,
			StartDate:        "2026-03-05",
			EndDate:          "2026-03-02",
			Reason:           "Liburan",
			ChosenApproverID: approverID.String(),
		})

		assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidDateRange)
	})
}

func pendingRequest(requesterID, approverID uuid.UUID, kind, status string) *leaverequest.LeaveRequest {
	current := approverID
	return &leaverequest.LeaveRequest{
		ID:                uuid.New(),
		RequestNumber:     "LV-2026-000042",
		RequesterID:       requesterID,
		RequesterName:     "Budi",
		RequesterRoleName: "STAFF GUDANG",
		DivisionCode:      "FIN",
		Kind:              kind,
		StartDate:         time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:           time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		TotalDays:         3,
		Reason:            "Acara keluarga",
		Status:            status,
		CurrentApproverID: &current,
	}
}

func TestWorkflow_DecideStage1(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	approverID := uuid.New()
	hrdID := uuid.New()

	stage1Actor := leaverequest.Actor{
		ID:       approverID.String(),
		Name:     "Manajer",
		RoleName: "MANAGER OPERASIONAL",
	}

	t.Run("approve advances to waiting stage2", func(t *testing.T) {
		deps := setupWorkflowTest(t)

		lr := pendingRequest(requesterID, approverID, leaverequest.KindAnnualLeave, leaverequest.StatusWaitingStage1)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			assert.Equal(t, lr.ID.String(), id)
			return lr, nil
		}
		deps.repo.decideApprovalRecordFn = func(ctx context.Context, requestID string, stage int, decision string, notes *string, decidedAt time.Time) error {
			assert.Equal(t, 1, stage)
			assert.Equal(t, leaverequest.DecisionApproved, decision)
			return nil
		}
		var stage2Record *leaverequest.ApprovalRecord
		deps.repo.createApprovalRecordFn = func(ctx context.Context, rec *leaverequest.ApprovalRecord) error {
			stage2Record = rec
			return nil
		}
		deps.approvers.eligibleStage2Fn = func(ctx context.Context, divisionCode string) ([]approver.Candidate, error) {
			assert.Equal(t, "FIN", divisionCode)
			return []approver.Candidate{{UserID: hrdID, Name: "Sari", RoleName: "STAFF HRD", Category: approver.CategoryHRD}}, nil
		}
		var transitioned *leaverequest.LeaveRequest
		deps.repo.updateTransitionFn = func(ctx context.Context, r *leaverequest.LeaveRequest) error {
			transitioned = r
			return nil
		}

		resp, err := deps.service.Decide(ctx, stage1Actor, lr.ID.String(), leaverequest.DecideRequest{
			Stage:    1,
			Decision: "approve",
		})

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusWaitingStage2, resp.Status)
		assert.Equal(t, hrdID, *transitioned.CurrentApproverID)
		assert.Equal(t, 2, stage2Record.Stage)
		assert.Equal(t, hrdID, stage2Record.ApproverID)

		// requester dapat progres, HRD dapat permintaan persetujuan
		assert.Len(t, deps.dispatcher.sent, 2)
		assert.Equal(t, notification.TypeLeaveProgress, deps.dispatcher.sent[0].Type)
		assert.Equal(t, notification.TypeLeaveNeedsApproval, deps.dispatcher.sent[1].Type)
		assert.Equal(t, hrdID, deps.dispatcher.sent[1].UserID)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("reject releases reserved quota", func(t *testing.T) {
		deps := setupWorkflowTest(t)

		lr := pendingRequest(requesterID, approverID, leaverequest.KindAnnualLeave, leaverequest.StatusWaitingStage1)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}
		deps.ledger.EXPECT().
			Release(gomock.Any(), gomock.Any(), requesterID.String(), 2026, 3).
			Return(quota.NewLeaveQuota(requesterID, 2026, 12), nil)

		resp, err := deps.service.Decide(ctx, stage1Actor, lr.ID.String(), leaverequest.DecideRequest{
			Stage:    1,
			Decision: "reject",
			Notes:    "Periode sibuk",
		})

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusRejected, resp.Status)
		assert.Nil(t, resp.CurrentApproverID)

		assert.Len(t, deps.dispatcher.sent, 1)
		assert.Equal(t, notification.TypeLeaveRejected, deps.dispatcher.sent[0].Type)
		assert.Equal(t, requesterID, deps.dispatcher.sent[0].UserID)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("reject of non quota kind skips ledger", func(t *testing.T) {
		deps := setupWorkflowTest(t)

		lr := pendingRequest(requesterID, approverID, leaverequest.KindPermission, leaverequest.StatusWaitingStage1)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}

		resp, err := deps.service.Decide(ctx, stage1Actor, lr.ID.String(), leaverequest.DecideRequest{
			Stage:    1,
			Decision: "reject",
			Notes:    "Tidak disetujui",
		})

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusRejected, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative reject without notes", func(t *testing.T) {
		deps := setupWorkflowTest(t)

		_, err := deps.service.Decide(ctx, stage1Actor, uuid.New().String(), leaverequest.DecideRequest{
			Stage:    1,
			Decision: "reject",
		})

		assert.ErrorIs(t, err, leaverequesterrors.ErrNotesRequired)
	})

	t.Run("negative actor is not current approver", func(t *testing.T) {
		deps := setupWorkflowTest(t)

		lr := pendingRequest(requesterID, approverID, leaverequest.KindSick, leaverequest.StatusWaitingStage1)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}

		outsider := leaverequest.Actor{ID: uuid.New().String(), Name: "Orang Lain", RoleName: "MANAGER"}
		_, err := deps.service.Decide(ctx, outsider, lr.ID.String(), leaverequest.DecideRequest{
			Stage:    1,
			Decision: "approve",
		})

		assert.ErrorIs(t, err, leaverequesterrors.ErrNotCurrentApprover)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative stale transition on repeat decide", func(t *testing.T) {
		deps := setupWorkflowTest(t)

		lr := pendingRequest(requesterID, approverID, leaverequest.KindSick, leaverequest.StatusWaitingStage2)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}

		_, err := deps.service.Decide(ctx, stage1Actor, lr.ID.String(), leaverequest.DecideRequest{
			Stage:    1,
			Decision: "approve",
		})

		assert.ErrorIs(t, err, leaverequesterrors.ErrStaleTransition)
		assert.Empty(t, deps.dispatcher.sent)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative no HRD configured blocks stage1 approve", func(t *testing.T) {
		deps := setupWorkflowTest(t)

		lr := pendingRequest(requesterID, approverID, leaverequest.KindSick, leaverequest.StatusWaitingStage1)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}
		deps.approvers.eligibleStage2Fn = func(ctx context.Context, divisionCode string) ([]approver.Candidate, error) {
			return nil, nil
		}

		_, err := deps.service.Decide(ctx, stage1Actor, lr.ID.String(), leaverequest.DecideRequest{
			Stage:    1,
			Decision: "approve",
		})

		assert.ErrorIs(t, err, leaverequesterrors.ErrNoApproverConfigured)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestWorkflow_DecideStage2(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	hrdID := uuid.New()

	hrdActor := leaverequest.Actor{
		ID:       hrdID.String(),
		Name:     "Sari",
		RoleName: "STAFF HRD",
	}

	t.Run("final approve commits quota", func(t *testing.T) {
		deps := setupWorkflowTest(t)

		lr := pendingRequest(requesterID, hrdID, leaverequest.KindAnnualLeave, leaverequest.StatusWaitingStage2)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}
		deps.ledger.EXPECT().
			Commit(gomock.Any(), gomock.Any(), requesterID.String(), 2026, 3).
			Return(quota.NewLeaveQuota(requesterID, 2026, 12), nil)

		resp, err := deps.service.Decide(ctx, hrdActor, lr.ID.String(), leaverequest.DecideRequest{
			Stage:    2,
			Decision: "approve",
		})

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusApproved, resp.Status)
		assert.Nil(t, resp.CurrentApproverID)

		assert.Len(t, deps.dispatcher.sent, 1)
		assert.Equal(t, notification.TypeLeaveApproved, deps.dispatcher.sent[0].Type)
		assert.Equal(t, requesterID, deps.dispatcher.sent[0].UserID)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("final approve of non quota kind skips ledger", func(t *testing.T) {
		deps := setupWorkflowTest(t)

		lr := pendingRequest(requesterID, hrdID, leaverequest.KindPermission, leaverequest.StatusWaitingStage2)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		deps.repo.findByIDForUpdateFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}

		resp, err := deps.service.Decide(ctx, hrdActor, lr.ID.String(), leaverequest.DecideRequest{
			Stage:    2,
			Decision: "approve",
		})

		assert.NoError(t, err)
		assert.Equal(t, leaverequest.StatusApproved, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative request not found", func(t *testing.T) {
		deps := setupWorkflowTest(t)

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		_, err := deps.service.Decide(ctx, hrdActor, uuid.New().String(), leaverequest.DecideRequest{
			Stage:    2,
			Decision: "approve",
		})

		assert.ErrorIs(t, err, leaverequesterrors.ErrRequestNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestWorkflow_Queries(t *testing.T) {
	ctx := context.Background()
	requesterID := uuid.New()
	approverID := uuid.New()

	t.Run("list pending filters by stage", func(t *testing.T) {
		deps := setupWorkflowTest(t)

		deps.repo.listPendingByApproverFn = func(ctx context.Context, aid string, stage int) ([]leaverequest.LeaveRequest, error) {
			assert.Equal(t, approverID.String(), aid)
			assert.Equal(t, 2, stage)
			return []leaverequest.LeaveRequest{
				*pendingRequest(requesterID, approverID, leaverequest.KindSick, leaverequest.StatusWaitingStage2),
			}, nil
		}

		resp, err := deps.service.ListPending(ctx, approverID.String(), 2)

		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Equal(t, leaverequest.StatusWaitingStage2, resp[0].Status)
	})

	t.Run("verify returns public trail", func(t *testing.T) {
		deps := setupWorkflowTest(t)

		lr := pendingRequest(requesterID, approverID, leaverequest.KindAnnualLeave, leaverequest.StatusApproved)
		decidedAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leaverequest.LeaveRequest, error) {
			return lr, nil
		}
		deps.repo.findApprovalRecordFn = func(ctx context.Context, requestID string, stage int) (*leaverequest.ApprovalRecord, error) {
			assert.Equal(t, 2, stage)
			return &leaverequest.ApprovalRecord{
				ID:             uuid.New(),
				LeaveRequestID: lr.ID,
				Stage:          2,
				ApproverID:     approverID,
				ApproverName:   "Sari",
				ApproverRole:   "STAFF HRD",
				Decision:       leaverequest.DecisionApproved,
				DecidedAt:      &decidedAt,
			}, nil
		}

		resp, err := deps.service.Verify(ctx, lr.ID.String(), 2)

		assert.NoError(t, err)
		assert.Equal(t, "LV-2026-000042", resp.RequestNumber)
		assert.Equal(t, leaverequest.StatusApproved, resp.Status)
		assert.Equal(t, "Sari", resp.Record.ApproverName)
		assert.NotNil(t, resp.Record.DecidedAt)
	})

	t.Run("negative verify with invalid stage", func(t *testing.T) {
		deps := setupWorkflowTest(t)

		_, err := deps.service.Verify(ctx, uuid.New().String(), 3)

		assert.ErrorIs(t, err, leaverequesterrors.ErrInvalidStage)
	})
}
