package quota

import (
	"net/http"
	"strconv"
	"time"

	quotaerrors "go-portal/internal/quota/errors"
	"go-portal/internal/shared/apperror"
	"go-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Handler struct {
	ledger Ledger
	logger *zap.Logger
}

func NewHandler(ledger Ledger, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("quota.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("quota.handler")
	}
	return &Handler{ledger: ledger, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("quota request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// GetSnapshot mengembalikan saldo cuti (lazy-init bila belum ada).
// Default ke actor sendiri dan tahun berjalan.
func (h *Handler) GetSnapshot(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.Query("user")
	if userID == "" {
		userID = c.GetString("user_id")
	}
	if _, err := uuid.Parse(userID); err != nil {
		h.writeServiceError(c, quotaerrors.ErrInvalidUserID)
		return
	}

	year := time.Now().UTC().Year()
	if y := c.Query("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil || parsed <= 0 {
			h.writeServiceError(c, quotaerrors.ErrInvalidYear)
			return
		}
		year = parsed
	}

	q, err := h.ledger.Snapshot(ctx, userID, year)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, MapToQuotaResponse(q), nil)
}

// SetConfig mengatur default total cuti untuk sebuah tahun. HRD only.
func (h *Handler) SetConfig(c *gin.Context) {
	ctx := c.Request.Context()

	var req SetConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http set quota config validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	if err := h.ledger.SetDefaultTotal(ctx, req.Year, req.DefaultTotal); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"year":          req.Year,
		"default_total": req.DefaultTotal,
	}, nil)
}

// SetTotal menyesuaikan total cuti satu user. HRD only.
func (h *Handler) SetTotal(c *gin.Context) {
	ctx := c.Request.Context()

	userID := c.Param("user")
	if _, err := uuid.Parse(userID); err != nil {
		h.writeServiceError(c, quotaerrors.ErrInvalidUserID)
		return
	}

	var req SetTotalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http set quota total validation failed", zap.Error(err))
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	q, err := h.ledger.SetTotal(ctx, userID, req.Year, req.Total)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, MapToQuotaResponse(q), nil)
}
