package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	resdto "promo-engine/internal/handler/dto/response"
	"promo-engine/internal/handler/httperr"
	"promo-engine/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuditHandler struct {
	auditUseCase usecase.AuditUseCase
}

func NewAuditHandler(auditUseCase usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{auditUseCase: auditUseCase}
}

// @Summary Query the decision trail
// @Description List evaluation decisions newest-first with keyset pagination
// @Tags audit
// @Produce json
// @Param order_id query string false "Filter by order ID"
// @Param campaign_id query string false "Filter by matched campaign ID"
// @Param from query string false "Inclusive lower bound (RFC 3339)"
// @Param to query string false "Exclusive upper bound (RFC 3339)"
// @Param cursor query string false "Keyset cursor from a previous page"
// @Param limit query int false "Page size (max 200)"
// @Success 200 {object} resdto.AuditPageResponse
// @Failure 400 {object} map[string]string
// @Router /campaigns/audit [get]
func (h *AuditHandler) Query(c *gin.Context) {
	query := usecase.AuditQuery{
		OrderID: c.Query("order_id"),
		Cursor:  c.Query("cursor"),
	}

	if raw := c.Query("campaign_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid campaign ID format")
			return
		}
		query.CampaignID = &id
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid 'from' timestamp")
			return
		}
		query.From = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid 'to' timestamp")
			return
		}
		query.To = &t
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit")
			return
		}
		query.Limit = limit
	}

	page, err := h.auditUseCase.Query(c.Request.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCursor):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid pagination cursor")
		case errors.Is(err, usecase.ErrAuditQueryFailed):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Decision trail unavailable")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAuditPage(page))
}
