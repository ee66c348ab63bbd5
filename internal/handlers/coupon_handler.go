package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"gocart/internal/models"
	"gocart/internal/services"
	"gocart/internal/utils"
)

type CouponHandler struct {
	couponService services.CouponService
}

func NewCouponHandler(couponService services.CouponService) *CouponHandler {
	return &CouponHandler{
		couponService: couponService,
	}
}

// Spin runs one wheel draw and returns the issued coupon
func (h *CouponHandler) Spin(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.couponService.Spin(c.Request.Context(), userID)
	if err != nil {
		if err == models.ErrQuotaExhausted {
			wait := time.Until(models.NextUTCMidnight(time.Now().UTC()))
			c.Header("Retry-After", strconv.Itoa(int(wait.Seconds())))
		}
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, "Coupon won", result)
}

// GetEntitlement reports how many spins remain today and when the quota
// resets
func (h *CouponHandler) GetEntitlement(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	status, err := h.couponService.GetEntitlement(c.Request.Context(), userID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Entitlement retrieved", status)
}

// ListCoupons returns the user's coupon history, newest first. The
// redeemed query parameter narrows the list to redeemed or open coupons.
func (h *CouponHandler) ListCoupons(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var redeemed *bool
	if raw, exists := c.GetQuery("redeemed"); exists {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid redeemed filter")
			return
		}
		redeemed = &value
	}

	coupons, err := h.couponService.ListCoupons(c.Request.Context(), userID, redeemed)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Coupons retrieved", coupons, &utils.Meta{
		Count: len(coupons),
	})
}
