package leaverequest

import (
	"time"

	"go-portal/internal/quota"
)

// Actor adalah identitas requester/approver hasil JWT middleware.
type Actor struct {
	ID           string
	Name         string
	RoleName     string
	DivisionCode string
}

type SubmitRequest struct {
	Kind             string  `json:"kind" binding:"required,oneof=ANNUAL_LEAVE SICK PERMISSION LATE_ARRIVAL EARLY_DEPARTURE"`
	StartDate        string  `json:"start_date" binding:"required"`
	EndDate          string  `json:"end_date"`
	Reason           string  `json:"reason" binding:"required"`
	ChosenApproverID string  `json:"chosen_approver_id" binding:"required,uuid"`
	CompanionContact *string `json:"companion_contact"`
	EvidenceRef      *string `json:"evidence_ref"`
}

type DecideRequest struct {
	Stage    int    `json:"stage" binding:"required,oneof=1 2"`
	Decision string `json:"decision" binding:"required,oneof=approve reject"`
	Notes    string `json:"notes"`
}

type ApprovalRecordResponse struct {
	Stage        int     `json:"stage"`
	ApproverID   string  `json:"approver_id"`
	ApproverName string  `json:"approver_name"`
	ApproverRole string  `json:"approver_role"`
	Decision     string  `json:"decision"`
	Notes        *string `json:"notes,omitempty"`
	DecidedAt    *string `json:"decided_at,omitempty"`
}

type LeaveRequestResponse struct {
	ID                string  `json:"id"`
	RequestNumber     string  `json:"request_number"`
	RequesterID       string  `json:"requester_id"`
	RequesterName     string  `json:"requester_name"`
	DivisionCode      string  `json:"division_code"`
	Kind              string  `json:"kind"`
	StartDate         string  `json:"start_date"`
	EndDate           string  `json:"end_date"`
	TotalDays         int     `json:"total_days"`
	Reason            string  `json:"reason"`
	CompanionContact  *string `json:"companion_contact,omitempty"`
	EvidenceRef       *string `json:"evidence_ref,omitempty"`
	Status            string  `json:"status"`
	CurrentApproverID *string `json:"current_approver_id,omitempty"`
	CreatedAt         string  `json:"created_at"`
}

type SubmitResponse struct {
	Request LeaveRequestResponse `json:"request"`
	Quota   *quota.QuotaResponse `json:"quota,omitempty"`
}

// VerificationResponse adalah payload publik untuk artefak QR/cetak.
type VerificationResponse struct {
	RequestNumber string                 `json:"request_number"`
	RequesterName string                 `json:"requester_name"`
	Kind          string                 `json:"kind"`
	StartDate     string                 `json:"start_date"`
	EndDate       string                 `json:"end_date"`
	Status        string                 `json:"status"`
	Record        ApprovalRecordResponse `json:"record"`
}

func mapToResponse(r LeaveRequest) LeaveRequestResponse {
	resp := LeaveRequestResponse{
		ID:               r.ID.String(),
		RequestNumber:    r.RequestNumber,
		RequesterID:      r.RequesterID.String(),
		RequesterName:    r.RequesterName,
		DivisionCode:     r.DivisionCode,
		Kind:             r.Kind,
		StartDate:        r.StartDate.Format("2006-01-02"),
		EndDate:          r.EndDate.Format("2006-01-02"),
		TotalDays:        r.TotalDays,
		Reason:           r.Reason,
		CompanionContact: r.CompanionContact,
		EvidenceRef:      r.EvidenceRef,
		Status:           r.Status,
		CreatedAt:        r.CreatedAt.Format(time.RFC3339),
	}
	if r.CurrentApproverID != nil {
		v := r.CurrentApproverID.String()
		resp.CurrentApproverID = &v
	}
	return resp
}

func mapToListResponse(requests []LeaveRequest) []LeaveRequestResponse {
	resp := make([]LeaveRequestResponse, len(requests))
	for i, r := range requests {
		resp[i] = mapToResponse(r)
	}
	return resp
}

func mapRecordToResponse(rec ApprovalRecord) ApprovalRecordResponse {
	resp := ApprovalRecordResponse{
		Stage:        rec.Stage,
		ApproverID:   rec.ApproverID.String(),
		ApproverName: rec.ApproverName,
		ApproverRole: rec.ApproverRole,
		Decision:     rec.Decision,
		Notes:        rec.Notes,
	}
	if rec.DecidedAt != nil {
		v := rec.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}
