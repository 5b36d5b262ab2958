package leaverequest

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go-portal/internal/approver"
	leaverequesterrors "go-portal/internal/leaverequest/errors"
	"go-portal/internal/notification"
	"go-portal/internal/quota"
	"go-portal/internal/shared/counter"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	counterTypeLeaveRequest = "leave_request"
	dateLayout              = "2006-01-02"
)

//go:generate mockgen -source=leaverequest_service.go -destination=mock/leaverequest_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actor Actor, req SubmitRequest) (*SubmitResponse, error)
	Decide(ctx context.Context, actor Actor, requestID string, req DecideRequest) (*LeaveRequestResponse, error)
	ListPending(ctx context.Context, approverID string, stage int) ([]LeaveRequestResponse, error)
	ListMine(ctx context.Context, requesterID string) ([]LeaveRequestResponse, error)
	GetByID(ctx context.Context, id string) (*LeaveRequestResponse, error)
	Verify(ctx context.Context, requestID string, stage int) (*VerificationResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	approvers  approver.Service
	ledger     quota.Ledger
	dispatcher notification.Dispatcher
	counter    counter.Repository
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	approvers approver.Service,
	ledger quota.Ledger,
	dispatcher notification.Dispatcher,
	counterRepo counter.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leaverequest.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		approvers:  approvers,
		ledger:     ledger,
		dispatcher: dispatcher,
		counter:    counterRepo,
		logger:     l,
	}
}

// Submit membuat request baru di WAITING_STAGE1. Reservasi kuota (untuk
// ANNUAL_LEAVE), pembuatan request, dan record approval tahap 1 berada
// dalam satu transaksi; notifikasi dikirim setelah commit.
func (s *service) Submit(ctx context.Context, actor Actor, req SubmitRequest) (*SubmitResponse, error) {
	requesterID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, leaverequesterrors.ErrInvalidRequesterID
	}

	start, end, err := parseDateRange(req)
	if err != nil {
		return nil, err
	}

	chosenID, err := uuid.Parse(req.ChosenApproverID)
	if err != nil {
		return nil, leaverequesterrors.ErrInvalidApprover
	}

	category := approver.CategoryFromRoleName(actor.RoleName)
	candidates, err := s.approvers.EligibleStage1(ctx, category, actor.DivisionCode)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, leaverequesterrors.ErrNoApproverConfigured
	}

	// chosen_approver_id dari klien tidak dipercaya begitu saja; harus
	// anggota set kandidat hasil resolusi policy di server.
	chosen, ok := findCandidate(candidates, chosenID)
	if !ok {
		return nil, leaverequesterrors.ErrInvalidApprover
	}

	totalDays := DayCount(start, end)
	year := start.Year()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	var snapshot *quota.LeaveQuota
	if ConsumesQuota(req.Kind) {
		snapshot, err = s.ledger.Reserve(ctx, tx, actor.ID, year, totalDays)
		if err != nil {
			return nil, err
		}
	}

	seq, err := s.counter.GetNextValue(ctx, year, counterTypeLeaveRequest)
	if err != nil {
		return nil, err
	}

	lr := &LeaveRequest{
		ID:                uuid.New(),
		RequestNumber:     fmt.Sprintf("LV-%d-%06d", year, seq),
		RequesterID:       requesterID,
		RequesterName:     actor.Name,
		RequesterRoleName: actor.RoleName,
		DivisionCode:      actor.DivisionCode,
		Kind:              req.Kind,
		StartDate:         start,
		EndDate:           end,
		TotalDays:         totalDays,
		Reason:            req.Reason,
		CompanionContact:  req.CompanionContact,
		EvidenceRef:       req.EvidenceRef,
		Status:            StatusWaitingStage1,
		CurrentApproverID: &chosen.UserID,
	}
	if err := qtx.Create(ctx, lr); err != nil {
		return nil, err
	}

	if err := qtx.CreateApprovalRecord(ctx, &ApprovalRecord{
		ID:             uuid.New(),
		LeaveRequestID: lr.ID,
		Stage:          1,
		ApproverID:     chosen.UserID,
		ApproverName:   chosen.Name,
		ApproverRole:   chosen.RoleName,
		Decision:       DecisionPending,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("leave request submitted",
		zap.String("request_id", lr.ID.String()),
		zap.String("request_number", lr.RequestNumber),
		zap.String("requester_id", actor.ID),
		zap.String("kind", lr.Kind),
		zap.Int("total_days", totalDays),
	)

	refType := "leave_request"
	s.dispatcher.Notify(ctx, notification.NotifyInput{
		UserID:        requesterID,
		Type:          notification.TypeLeaveSubmitted,
		Title:         "Pengajuan terkirim",
		Message:       fmt.Sprintf("Pengajuan %s menunggu persetujuan %s", lr.RequestNumber, chosen.Name),
		ReferenceID:   &lr.ID,
		ReferenceType: &refType,
	})
	s.dispatcher.Notify(ctx, notification.NotifyInput{
		UserID:        chosen.UserID,
		Type:          notification.TypeLeaveNeedsApproval,
		Title:         "Persetujuan dibutuhkan",
		Message:       fmt.Sprintf("%s mengajukan %s (%s)", actor.Name, lr.Kind, lr.RequestNumber),
		ReferenceID:   &lr.ID,
		ReferenceType: &refType,
	})

	resp := &SubmitResponse{Request: mapToResponse(*lr)}
	if snapshot != nil {
		q := quota.MapToQuotaResponse(snapshot)
		resp.Quota = &q
	}
	return resp, nil
}

func (s *service) Decide(ctx context.Context, actor Actor, requestID string, req DecideRequest) (*LeaveRequestResponse, error) {
	actorID, err := uuid.Parse(actor.ID)
	if err != nil {
		return nil, leaverequesterrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(requestID); err != nil {
		return nil, leaverequesterrors.ErrRequestNotFound
	}

	approve := req.Decision == "approve"
	if !approve && req.Decision != "reject" {
		return nil, leaverequesterrors.ErrInvalidDecision
	}
	if !approve && req.Notes == "" {
		return nil, leaverequesterrors.ErrNotesRequired
	}

	var expectedStatus string
	switch req.Stage {
	case 1:
		expectedStatus = StatusWaitingStage1
	case 2:
		expectedStatus = StatusWaitingStage2
	default:
		return nil, leaverequesterrors.ErrInvalidStage
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	lr, err := qtx.FindByIDForUpdate(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, leaverequesterrors.ErrRequestNotFound
		}
		return nil, err
	}

	// Retry klien atau dua approver konkuren: siapa pun yang kalah lock
	// melihat status yang sudah bergeser dan berhenti di sini.
	if lr.Status != expectedStatus {
		return nil, leaverequesterrors.ErrStaleTransition
	}
	if lr.CurrentApproverID == nil || *lr.CurrentApproverID != actorID {
		return nil, leaverequesterrors.ErrNotCurrentApprover
	}

	now := time.Now()
	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}

	var nextApprover *approver.Candidate
	if approve {
		if err := qtx.DecideApprovalRecord(ctx, requestID, req.Stage, DecisionApproved, notes, now); err != nil {
			return nil, err
		}

		if req.Stage == 1 {
			candidates, err := s.approvers.EligibleStage2(ctx, lr.DivisionCode)
			if err != nil {
				return nil, err
			}
			if len(candidates) == 0 {
				return nil, leaverequesterrors.ErrNoApproverConfigured
			}
			nextApprover = &candidates[0]

			if err := qtx.CreateApprovalRecord(ctx, &ApprovalRecord{
				ID:             uuid.New(),
				LeaveRequestID: lr.ID,
				Stage:          2,
				ApproverID:     nextApprover.UserID,
				ApproverName:   nextApprover.Name,
				ApproverRole:   nextApprover.RoleName,
				Decision:       DecisionPending,
			}); err != nil {
				return nil, err
			}

			lr.Status = StatusWaitingStage2
			lr.CurrentApproverID = &nextApprover.UserID
		} else {
			lr.Status = StatusApproved
			lr.CurrentApproverID = nil
			if ConsumesQuota(lr.Kind) {
				if _, err := s.ledger.Commit(ctx, tx, lr.RequesterID.String(), lr.StartDate.Year(), lr.TotalDays); err != nil {
					return nil, err
				}
			}
		}
	} else {
		if err := qtx.DecideApprovalRecord(ctx, requestID, req.Stage, DecisionRejected, notes, now); err != nil {
			return nil, err
		}
		lr.Status = StatusRejected
		lr.CurrentApproverID = nil
		if ConsumesQuota(lr.Kind) {
			if _, err := s.ledger.Release(ctx, tx, lr.RequesterID.String(), lr.StartDate.Year(), lr.TotalDays); err != nil {
				return nil, err
			}
		}
	}

	if err := qtx.UpdateTransition(ctx, lr); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("leave request transition",
		zap.String("request_id", lr.ID.String()),
		zap.Int("stage", req.Stage),
		zap.String("decision", req.Decision),
		zap.String("approver_id", actor.ID),
		zap.String("status", lr.Status),
	)

	s.notifyTransition(ctx, lr, actor, req, nextApprover)

	resp := mapToResponse(*lr)
	return &resp, nil
}

// notifyTransition jalan setelah commit; kegagalan dispatch tidak pernah
// mempengaruhi hasil transisi.
func (s *service) notifyTransition(ctx context.Context, lr *LeaveRequest, actor Actor, req DecideRequest, next *approver.Candidate) {
	refType := "leave_request"

	switch {
	case lr.Status == StatusRejected:
		s.dispatcher.Notify(ctx, notification.NotifyInput{
			UserID:        lr.RequesterID,
			Type:          notification.TypeLeaveRejected,
			Title:         "Pengajuan ditolak",
			Message:       fmt.Sprintf("Pengajuan %s ditolak oleh %s", lr.RequestNumber, actor.Name),
			ReferenceID:   &lr.ID,
			ReferenceType: &refType,
		})
	case lr.Status == StatusApproved:
		s.dispatcher.Notify(ctx, notification.NotifyInput{
			UserID:        lr.RequesterID,
			Type:          notification.TypeLeaveApproved,
			Title:         "Pengajuan disetujui",
			Message:       fmt.Sprintf("Pengajuan %s disetujui penuh", lr.RequestNumber),
			ReferenceID:   &lr.ID,
			ReferenceType: &refType,
		})
	case next != nil:
		s.dispatcher.Notify(ctx, notification.NotifyInput{
			UserID:        lr.RequesterID,
			Type:          notification.TypeLeaveProgress,
			Title:         "Pengajuan lolos tahap 1",
			Message:       fmt.Sprintf("Pengajuan %s menunggu persetujuan HRD", lr.RequestNumber),
			ReferenceID:   &lr.ID,
			ReferenceType: &refType,
		})
		s.dispatcher.Notify(ctx, notification.NotifyInput{
			UserID:        next.UserID,
			Type:          notification.TypeLeaveNeedsApproval,
			Title:         "Persetujuan dibutuhkan",
			Message:       fmt.Sprintf("%s menunggu persetujuan final (%s)", lr.RequesterName, lr.RequestNumber),
			ReferenceID:   &lr.ID,
			ReferenceType: &refType,
		})
	}
}

func (s *service) ListPending(ctx context.Context, approverID string, stage int) ([]LeaveRequestResponse, error) {
	if _, err := uuid.Parse(approverID); err != nil {
		return nil, leaverequesterrors.ErrInvalidActorID
	}
	if stage != 0 && stage != 1 && stage != 2 {
		return nil, leaverequesterrors.ErrInvalidStage
	}
	requests, err := s.repo.ListPendingByApprover(ctx, approverID, stage)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) ListMine(ctx context.Context, requesterID string) ([]LeaveRequestResponse, error) {
	if _, err := uuid.Parse(requesterID); err != nil {
		return nil, leaverequesterrors.ErrInvalidRequesterID
	}
	requests, err := s.repo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(requests), nil
}

func (s *service) GetByID(ctx context.Context, id string) (*LeaveRequestResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaverequesterrors.ErrRequestNotFound
	}
	lr, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaverequesterrors.ErrRequestNotFound
		}
		return nil, err
	}
	resp := mapToResponse(*lr)
	return &resp, nil
}

// Verify adalah endpoint publik untuk artefak cetak/QR: menampilkan jejak
// keputusan satu tahap tanpa autentikasi.
func (s *service) Verify(ctx context.Context, requestID string, stage int) (*VerificationResponse, error) {
	if _, err := uuid.Parse(requestID); err != nil {
		return nil, leaverequesterrors.ErrRequestNotFound
	}
	if stage != 1 && stage != 2 {
		return nil, leaverequesterrors.ErrInvalidStage
	}

	lr, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaverequesterrors.ErrRequestNotFound
		}
		return nil, err
	}

	rec, err := s.repo.FindApprovalRecord(ctx, requestID, stage)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaverequesterrors.ErrRecordNotFound
		}
		return nil, err
	}

	return &VerificationResponse{
		RequestNumber: lr.RequestNumber,
		RequesterName: lr.RequesterName,
		Kind:          lr.Kind,
		StartDate:     lr.StartDate.Format(dateLayout),
		EndDate:       lr.EndDate.Format(dateLayout),
		Status:        lr.Status,
		Record:        mapRecordToResponse(*rec),
	}, nil
}

func parseDateRange(req SubmitRequest) (time.Time, time.Time, error) {
	if !ValidKind(req.Kind) {
		return time.Time{}, time.Time{}, leaverequesterrors.ErrInvalidKind
	}
	if req.Reason == "" {
		return time.Time{}, time.Time{}, leaverequesterrors.ErrReasonRequired
	}

	start, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, leaverequesterrors.ErrInvalidDateFormat
	}

	end := start
	if req.EndDate != "" {
		end, err = time.Parse(dateLayout, req.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, leaverequesterrors.ErrInvalidDateFormat
		}
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, leaverequesterrors.ErrInvalidDateRange
	}
	if SingleDateKind(req.Kind) && !end.Equal(start) {
		return time.Time{}, time.Time{}, leaverequesterrors.ErrSingleDateRequired
	}
	return start, end, nil
}

func findCandidate(candidates []approver.Candidate, id uuid.UUID) (*approver.Candidate, bool) {
	for i := range candidates {
		if candidates[i].UserID == id {
			return &candidates[i], true
		}
	}
	return nil, false
}
