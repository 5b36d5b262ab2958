package leaverequesterrors

import (
	"net/http"

	"go-portal/internal/shared/apperror"
)

var (
	ErrInvalidRequesterID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid requester id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidKind = apperror.New(
		apperror.CodeInvalidInput,
		"unknown leave request kind",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrSingleDateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"this kind applies to a single date",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"reason is required",
		http.StatusBadRequest,
	)
	ErrInvalidApprover = apperror.New(
		apperror.CodeInvalidInput,
		"chosen approver is not eligible for this request",
		http.StatusBadRequest,
	)
	ErrNoApproverConfigured = apperror.New(
		apperror.CodeInvalidState,
		"no eligible approver is configured; contact HRD",
		http.StatusUnprocessableEntity,
	)
	ErrNotCurrentApprover = apperror.New(
		apperror.CodeForbidden,
		"you are not the assigned approver for this request",
		http.StatusForbidden,
	)
	ErrStaleTransition = apperror.New(
		apperror.CodeConflict,
		"request has already been decided",
		http.StatusConflict,
	)
	ErrInvalidStage = apperror.New(
		apperror.CodeInvalidInput,
		"stage must be 1 or 2",
		http.StatusBadRequest,
	)
	ErrInvalidDecision = apperror.New(
		apperror.CodeInvalidInput,
		"decision must be approve or reject",
		http.StatusBadRequest,
	)
	ErrNotesRequired = apperror.New(
		apperror.CodeInvalidInput,
		"notes are required when rejecting",
		http.StatusBadRequest,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"approval record not found",
		http.StatusNotFound,
	)
)
