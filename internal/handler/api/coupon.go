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

type CouponHandler struct {
	couponUseCase usecase.CouponUseCase
}

func NewCouponHandler(couponUseCase usecase.CouponUseCase) *CouponHandler {
	return &CouponHandler{couponUseCase: couponUseCase}
}

// @Summary Reserve a coupon code
// @Description Place a TTL-bounded hold on a coupon code for a customer
// @Tags coupons
// @Accept json
// @Produce json
// @Param code path string true "Coupon code"
// @Param request body reqdto.ReserveCouponRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /coupons/{code}/reserve [post]
func (h *CouponHandler) Reserve(c *gin.Context) {
	code := c.Param("code")

	var req reqdto.ReserveCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format")
		return
	}

	reservation, err := h.couponUseCase.Reserve(c.Request.Context(), code, req.CustomerID, req.HolderID)
	if err != nil {
		h.respondCouponError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.FromReservation(reservation))
}

// @Summary Confirm a reservation
// @Description Transition a held coupon code to redeemed
// @Tags coupons
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /coupons/reservations/{id}/confirm [post]
func (h *CouponHandler) Confirm(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format")
		return
	}

	if err := h.couponUseCase.Confirm(c.Request.Context(), id); err != nil {
		h.respondCouponError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Release a reservation
// @Description Return a held coupon code to the pool; idempotent
// @Tags coupons
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Router /coupons/reservations/{id}/release [post]
func (h *CouponHandler) Release(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format")
		return
	}

	if err := h.couponUseCase.Release(c.Request.Context(), id); err != nil {
		h.respondCouponError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CouponHandler) respondCouponError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrCouponNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Coupon not found")
	case errors.Is(err, usecase.ErrReservationNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found")
	case errors.Is(err, usecase.ErrAlreadyRedeemed):
		httperr.AbortWithError(c, http.StatusConflict, err, "Coupon already redeemed")
	case errors.Is(err, usecase.ErrAlreadyReservedByOther):
		httperr.AbortWithError(c, http.StatusConflict, err, "Coupon is held by another reservation")
	case errors.Is(err, usecase.ErrUsageLimitExceeded):
		httperr.AbortWithError(c, http.StatusConflict, err, "Per-customer usage limit reached")
	case errors.Is(err, usecase.ErrCouponExpired):
		httperr.AbortWithError(c, http.StatusGone, err, "Coupon expired")
	case errors.Is(err, usecase.ErrStoreUnavailable):
		httperr.AbortWithError(c, http.StatusServiceUnavailable, err, "Durable store unavailable")
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
	}
}
