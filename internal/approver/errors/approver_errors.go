package approvererrors

import (
	"net/http"

	"go-portal/internal/shared/apperror"
)

var (
	ErrInvalidDivision = apperror.New(
		apperror.CodeInvalidInput,
		"division is required",
		http.StatusBadRequest,
	)
	ErrInvalidRequesterRole = apperror.New(
		apperror.CodeInvalidInput,
		"requester role is required",
		http.StatusBadRequest,
	)
	ErrApproverNotFound = apperror.New(
		apperror.CodeNotFound,
		"approver not found",
		http.StatusNotFound,
	)
)
