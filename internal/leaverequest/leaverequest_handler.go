package leaverequest

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"go-portal/internal/shared/apperror"
	"go-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	rdb     *redis.Client
	logger  *zap.Logger
}

func NewHandler(service Service, rdb *redis.Client, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leaverequest.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leaverequest.handler")
	}
	return &Handler{service: service, rdb: rdb, logger: l}
}

func actorFromContext(c *gin.Context) Actor {
	return Actor{
		ID:           c.GetString("user_id"),
		Name:         c.GetString("user_name"),
		RoleName:     c.GetString("role"),
		DivisionCode: c.GetString("division_code"),
	}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Submit membuat pengajuan baru. Endpoint ini dilindungi middleware
// idempotency; response sukses di-cache per Idempotency-Key.
func (h *Handler) Submit(c *gin.Context) {
	lockKey, _ := c.Get("idempotency_lock_key")
	cacheKey, _ := c.Get("idempotency_cache_key")

	if h.rdb != nil {
		if lk, ok := lockKey.(string); ok && lk != "" {
			defer h.rdb.Del(c.Request.Context(), lk)
		}
	}

	actor := actorFromContext(c)

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http submit validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), actor, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	if h.rdb != nil {
		if ck, ok := cacheKey.(string); ok && ck != "" {
			if payload, marshalErr := json.Marshal(resp); marshalErr == nil {
				_ = h.rdb.Set(c.Request.Context(), ck, payload, 24*time.Hour).Err()
			}
		}
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Decide(c *gin.Context) {
	actor := actorFromContext(c)
	requestID := c.Param("id")

	var req DecideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http decide validation failed", zap.Error(err))
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Input tidak valid", err.Error())
		return
	}

	resp, err := h.service.Decide(c.Request.Context(), actor, requestID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// ListPending menampilkan antrean persetujuan milik actor. Query ?stage=
// opsional untuk memfilter tahap.
func (h *Handler) ListPending(c *gin.Context) {
	approverID := c.GetString("user_id")

	stage := 0
	if s := c.Query("stage"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "stage harus angka", nil)
			return
		}
		stage = parsed
	}

	resp, err := h.service.ListPending(c.Request.Context(), approverID, stage)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListMine(c *gin.Context) {
	resp, err := h.service.ListMine(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// Verify dipakai tanpa login (scan QR dari surat cuti).
func (h *Handler) Verify(c *gin.Context) {
	stage, err := strconv.Atoi(c.Param("stage"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "stage harus angka", nil)
		return
	}

	resp, err := h.service.Verify(c.Request.Context(), c.Param("id"), stage)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
