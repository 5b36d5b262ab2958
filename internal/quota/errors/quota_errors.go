package quotaerrors

import (
	"net/http"

	"go-portal/internal/shared/apperror"
)

var (
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidYear = apperror.New(
		apperror.CodeInvalidInput,
		"invalid year",
		http.StatusBadRequest,
	)
	ErrInvalidDayCount = apperror.New(
		apperror.CodeInvalidInput,
		"day count must be positive",
		http.StatusBadRequest,
	)
	ErrQuotaExceeded = apperror.New(
		apperror.CodeConflict,
		"remaining leave quota is not enough",
		http.StatusConflict,
	)
	ErrInvalidAdjustment = apperror.New(
		apperror.CodeInvalidInput,
		"new total would make remaining quota negative",
		http.StatusBadRequest,
	)
	// Pending lebih kecil dari hari yang di-commit/release berarti state
	// ledger sudah korup. Tidak boleh di-retry, harus diinvestigasi.
	ErrQuotaInconsistent = apperror.New(
		apperror.CodeInternalError,
		"leave quota ledger is inconsistent",
		http.StatusInternalServerError,
	)
)
