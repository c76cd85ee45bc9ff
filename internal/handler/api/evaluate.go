package api

import (
	"errors"
	"net/http"

	reqdto "promo-engine/internal/handler/dto/request"
	resdto "promo-engine/internal/handler/dto/response"
	"promo-engine/internal/handler/httperr"
	"promo-engine/internal/registry"
	"promo-engine/internal/usecase"

	"github.com/gin-gonic/gin"
)

type EvaluateHandler struct {
	evaluateUseCase usecase.EvaluateUseCase
}

func NewEvaluateHandler(evaluateUseCase usecase.EvaluateUseCase) *EvaluateHandler {
	return &EvaluateHandler{evaluateUseCase: evaluateUseCase}
}

// @Summary Evaluate campaigns for an order
// @Description Match active campaigns against the order context, resolve conflicts and record the decision
// @Tags campaigns
// @Accept json
// @Produce json
// @Param request body reqdto.EvaluateRequest true "Order context"
// @Success 200 {object} resdto.EvaluationResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /campaigns/evaluate [post]
func (h *EvaluateHandler) Evaluate(c *gin.Context) {
	var req reqdto.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format")
		return
	}

	result, err := h.evaluateUseCase.Evaluate(c.Request.Context(), req.ToOrderContext())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidOrder):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid order context")
		case errors.Is(err, registry.ErrLoadFailed):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Campaign registry unavailable")
		case errors.Is(err, usecase.ErrStoreUnavailable):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Durable store unavailable")
		case errors.Is(err, usecase.ErrAuditWriteFailed):
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to record evaluation decision")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromEvaluationResult(result))
}
