//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"promo-engine/internal/domain/campaign"
	"promo-engine/internal/handler/api"
	resdto "promo-engine/internal/handler/dto/response"
	"promo-engine/internal/usecase"
	"promo-engine/tests/common/httptest"
	usecasemock "promo-engine/tests/mock/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CampaignHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockCampaigns *usecasemock.MockCampaignUseCase
	handler       *api.CampaignHandler
}

func (s *CampaignHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCampaigns = usecasemock.NewMockCampaignUseCase(s.mockCtrl)
	s.handler = api.NewCampaignHandler(s.mockCampaigns)

	s.router.POST("/campaigns", s.handler.Upsert)
	s.router.POST("/campaigns/:id/expire", s.handler.Expire)
}

func (s *CampaignHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCampaignHandlerSuite(t *testing.T) {
	suite.Run(t, new(CampaignHandlerTestSuite))
}

func (s *CampaignHandlerTestSuite) buildCampaign() *campaign.Campaign {
	discount, err := campaign.NewPercentDiscount(10, 0)
	s.Require().NoError(err)

	c, err := campaign.New(campaign.Params{
		Name:     "Summer Sale",
		RuleText: "subtotal >= 5000",
		Discount: discount,
		Priority: 100,
		StartsAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndsAt:   time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		Status:   campaign.StatusActive,
	})
	s.Require().NoError(err)
	return c
}

// ================================================================================
// TestUpsert
// ================================================================================

func (s *CampaignHandlerTestSuite) TestUpsert() {
	url := "/campaigns"
	reqBody := map[string]any{
		"name":          "Summer Sale",
		"rule_text":     "subtotal >= 5000",
		"discount_kind": "percent",
		"percent":       10,
		"priority":      100,
		"starts_at":     "2025-06-01T00:00:00Z",
		"ends_at":       "2025-09-01T00:00:00Z",
		"status":        "active",
	}

	s.Run("success: returns 201 Created with the campaign", func() {
		created := s.buildCampaign()
		s.mockCampaigns.EXPECT().Upsert(gomock.Any(), gomock.Any()).
			Return(created, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)

		var response resdto.CampaignResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(created.ID(), response.ID)
		s.Equal("Summer Sale", response.Name)
		s.Equal("percent", response.DiscountKind)
		s.Equal("active", response.Status)
	})

	s.Run("error: 400 Bad Request on missing fields", func() {
		for _, field := range []string{"name", "rule_text", "discount_kind", "starts_at", "ends_at", "status"} {
			s.Run("missing "+field, func() {
				body := make(map[string]any, len(reqBody))
				for k, v := range reqBody {
					body[k] = v
				}
				delete(body, field)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body)
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			campaignError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "rule syntax error",
				campaignError:  usecase.ErrRuleSyntax,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "does not parse",
			},
			{
				name:           "validation error",
				campaignError:  usecase.ErrCampaignValidation,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid campaign definition",
			},
			{
				name:           "store unavailable",
				campaignError:  usecase.ErrStoreUnavailable,
				expectedStatus: http.StatusServiceUnavailable,
				expectedMsg:    "unavailable",
			},
			{
				name:           "internal server error",
				campaignError:  errors.New("boom"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCampaigns.EXPECT().Upsert(gomock.Any(), gomock.Any()).
					Return(nil, tc.campaignError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody)
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestExpire
// ================================================================================

func (s *CampaignHandlerTestSuite) TestExpire() {
	campaignID := uuid.New()
	url := "/campaigns/" + campaignID.String() + "/expire"

	s.Run("success: returns 204 No Content", func() {
		s.mockCampaigns.EXPECT().Expire(gomock.Any(), campaignID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		invalidURL := "/campaigns/invalid-uuid/expire"
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, invalidURL, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid campaign ID")
	})

	s.Run("error: 404 Not Found for unknown campaign", func() {
		s.mockCampaigns.EXPECT().Expire(gomock.Any(), campaignID).
			Return(usecase.ErrCampaignNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Campaign not found")
	})

	s.Run("error: 503 when the store is unavailable", func() {
		s.mockCampaigns.EXPECT().Expire(gomock.Any(), campaignID).
			Return(usecase.ErrStoreUnavailable).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusServiceUnavailable, "unavailable")
	})
}
