package response

import (
	"time"

	"promo-engine/internal/usecase"

	"github.com/google/uuid"
)

type DecisionRejectionResponse struct {
	CampaignID uuid.UUID `json:"campaignId"`
	Reason     string    `json:"reason"`
}

type DecisionResponse struct {
	ID                 uuid.UUID                   `json:"id"`
	OrderID            string                      `json:"orderId"`
	OccurredAt         time.Time                   `json:"occurredAt"`
	SnapshotVersion    uint64                      `json:"snapshotVersion"`
	Matched            []uuid.UUID                 `json:"matched"`
	Applied            []uuid.UUID                 `json:"applied"`
	Rejected           []DecisionRejectionResponse `json:"rejected"`
	TotalDiscountCents int64                       `json:"totalDiscountCents"`
	CouponCode         string                      `json:"couponCode,omitempty"`
}

type AuditPageResponse struct {
	Decisions  []DecisionResponse `json:"decisions"`
	NextCursor string             `json:"nextCursor,omitempty"`
}

func FromAuditPage(page *usecase.AuditPage) *AuditPageResponse {
	decisions := make([]DecisionResponse, len(page.Decisions))
	for i, d := range page.Decisions {
		rejected := make([]DecisionRejectionResponse, len(d.Rejections))
		for j, r := range d.Rejections {
			rejected[j] = DecisionRejectionResponse{CampaignID: r.CampaignID, Reason: r.Reason}
		}
		decisions[i] = DecisionResponse{
			ID:                 d.ID,
			OrderID:            d.OrderID,
			OccurredAt:         d.OccurredAt,
			SnapshotVersion:    d.SnapshotVersion,
			Matched:            d.MatchedCampaignIDs,
			Applied:            d.AppliedCampaignIDs,
			Rejected:           rejected,
			TotalDiscountCents: d.TotalDiscountCents,
			CouponCode:         d.CouponCode,
		}
	}
	return &AuditPageResponse{Decisions: decisions, NextCursor: page.NextCursor}
}
