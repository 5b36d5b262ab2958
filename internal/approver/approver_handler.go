package approver

import (
	"net/http"

	approvererrors "go-portal/internal/approver/errors"
	"go-portal/internal/shared/apperror"
	"go-portal/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("approver.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("approver.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("approver request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// ListEligible mengembalikan kandidat approver tahap 1 untuk requester.
// Divisi dan role default diambil dari identitas actor, bisa dioverride
// lewat query string untuk kebutuhan admin.
func (h *Handler) ListEligible(c *gin.Context) {
	ctx := c.Request.Context()

	division := c.Query("division")
	if division == "" {
		division = c.GetString("division_code")
	}
	if division == "" {
		h.writeServiceError(c, approvererrors.ErrInvalidDivision)
		return
	}

	requesterRole := c.Query("requesterRole")
	if requesterRole == "" {
		requesterRole = c.GetString("role")
	}
	if requesterRole == "" {
		h.writeServiceError(c, approvererrors.ErrInvalidRequesterRole)
		return
	}

	category := CategoryFromRoleName(requesterRole)

	candidates, err := h.service.EligibleStage1(ctx, category, division)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"requester_category": string(category),
		"division_code":      division,
		"approvers":          mapToCandidateResponses(candidates),
	}, nil)
}
