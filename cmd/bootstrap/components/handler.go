package components

import (
	"promo-engine/internal/handler"
	"promo-engine/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewEvaluateHandler,
		api.NewCouponHandler,
		api.NewCampaignHandler,
		api.NewAuditHandler,
	),
	fx.Invoke(handler.NewRouter),
)
