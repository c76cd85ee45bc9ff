package response

import (
	"time"

	"promo-engine/internal/usecase"

	"github.com/google/uuid"
)

type AppliedDiscount struct {
	CampaignID    uuid.UUID `json:"campaignId"`
	CampaignName  string    `json:"campaignName"`
	DiscountCents int64     `json:"discountCents"`
	Truncated     bool      `json:"truncated,omitempty"`
}

type RejectedCampaign struct {
	CampaignID   uuid.UUID `json:"campaignId"`
	CampaignName string    `json:"campaignName,omitempty"`
	Reason       string    `json:"reason"`
}

type ReservationResponse struct {
	ReservationID uuid.UUID `json:"reservationId"`
	Code          string    `json:"code"`
	CampaignID    uuid.UUID `json:"campaignId"`
	CustomerID    uuid.UUID `json:"customerId"`
	HolderID      string    `json:"holderId"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

type EvaluationResponse struct {
	DecisionID         uuid.UUID            `json:"decisionId"`
	SnapshotVersion    uint64               `json:"snapshotVersion"`
	Matched            []uuid.UUID          `json:"matched"`
	Applied            []AppliedDiscount    `json:"applied"`
	Rejected           []RejectedCampaign   `json:"rejected"`
	TotalDiscountCents int64                `json:"totalDiscountCents"`
	Reservation        *ReservationResponse `json:"reservation,omitempty"`
	CouponError        string               `json:"couponError,omitempty"`
}

func FromEvaluationResult(result *usecase.EvaluationResult) *EvaluationResponse {
	applied := make([]AppliedDiscount, len(result.Resolution.Applied))
	for i, a := range result.Resolution.Applied {
		applied[i] = AppliedDiscount{
			CampaignID:    a.CampaignID,
			CampaignName:  a.CampaignName,
			DiscountCents: a.DiscountCents,
			Truncated:     a.Truncated,
		}
	}

	rejected := make([]RejectedCampaign, len(result.Resolution.Rejected))
	for i, r := range result.Resolution.Rejected {
		rejected[i] = RejectedCampaign{
			CampaignID:   r.CampaignID,
			CampaignName: r.CampaignName,
			Reason:       string(r.Reason),
		}
	}

	resp := &EvaluationResponse{
		DecisionID:         result.DecisionID,
		SnapshotVersion:    result.SnapshotVersion,
		Matched:            result.Matched,
		Applied:            applied,
		Rejected:           rejected,
		TotalDiscountCents: result.Resolution.TotalDiscountCents,
		CouponError:        result.CouponError,
	}
	if result.Reservation != nil {
		resp.Reservation = FromReservation(result.Reservation)
	}
	return resp
}

func FromReservation(r *usecase.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ReservationID: r.ID,
		Code:          r.Code,
		CampaignID:    r.CampaignID,
		CustomerID:    r.CustomerID,
		HolderID:      r.HolderID,
		ExpiresAt:     r.ExpiresAt,
	}
}
