package api

import (
	"errors"
	"net/http"

	reqdto "promo-engine/internal/handler/dto/request"
	resdto "promo-engine/internal/handler/dto/response"
	"promo-engine/internal/handler/httperr"
	"promo-engine/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CampaignHandler struct {
	campaignUseCase usecase.CampaignUseCase
}

func NewCampaignHandler(campaignUseCase usecase.CampaignUseCase) *CampaignHandler {
	return &CampaignHandler{campaignUseCase: campaignUseCase}
}

// @Summary Create or update a campaign
// @Description Upsert a campaign definition; the rule text is compiled and rejected on syntax errors
// @Tags campaigns
// @Accept json
// @Produce json
// @Param request body reqdto.UpsertCampaignRequest true "Campaign definition"
// @Success 201 {object} resdto.CampaignResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /campaigns [post]
func (h *CampaignHandler) Upsert(c *gin.Context) {
	var req reqdto.UpsertCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format")
		return
	}

	created, err := h.campaignUseCase.Upsert(c.Request.Context(), req.ToInput())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRuleSyntax):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Rule text does not parse")
		case errors.Is(err, usecase.ErrCampaignValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid campaign definition")
		case errors.Is(err, usecase.ErrStoreUnavailable):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Durable store unavailable")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCampaign(created))
}

// @Summary Expire a campaign
// @Description Transition a campaign to expired and retire its remaining coupon codes; idempotent
// @Tags campaigns
// @Produce json
// @Param id path string true "Campaign ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /campaigns/{id}/expire [post]
func (h *CampaignHandler) Expire(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid campaign ID format")
		return
	}

	if err := h.campaignUseCase.Expire(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrCampaignNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Campaign not found")
		case errors.Is(err, usecase.ErrStoreUnavailable):
			httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Durable store unavailable")
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
