package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gocart/internal/models"
	"gocart/internal/utils"
	"gocart/internal/validators"
)

// currentUserID pulls the authenticated user from the request context. It
// writes the 401 response itself when the middleware did not run.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	userID, ok := value.(primitive.ObjectID)
	if !ok {
		utils.UnauthorizedResponse(c)
		return primitive.NilObjectID, false
	}

	return userID, true
}

func validationDetails(errs validators.ValidationErrors) map[string]string {
	details := make(map[string]string, len(errs))
	for _, err := range errs {
		details[err.Field] = err.Message
	}
	return details
}

// respondDomainError maps domain errors to HTTP status codes and stable
// error codes. Unrecognized errors become a 500.
func respondDomainError(c *gin.Context, err error) {
	switch err {
	case models.ErrNotAuthenticated:
		utils.UnauthorizedResponse(c)
	case models.ErrInvalidPassword:
		utils.ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
	case models.ErrEmailTaken:
		utils.ErrorResponse(c, http.StatusConflict, "EMAIL_TAKEN", err.Error())
	case models.ErrUserNotFound:
		utils.NotFoundResponse(c, "User")
	case models.ErrQuotaExhausted:
		utils.ErrorResponse(c, http.StatusTooManyRequests, "QUOTA_EXHAUSTED", err.Error())
	case models.ErrDrawInProgress:
		utils.ErrorResponse(c, http.StatusConflict, "DRAW_IN_PROGRESS", err.Error())
	case models.ErrCouponNotFound:
		utils.NotFoundResponse(c, "Coupon")
	case models.ErrCouponNotOwned:
		utils.ErrorResponse(c, http.StatusForbidden, "COUPON_NOT_OWNED", err.Error())
	case models.ErrCouponAlreadyRedeemed:
		utils.ErrorResponse(c, http.StatusConflict, "COUPON_ALREADY_REDEEMED", err.Error())
	case models.ErrCouponExpired:
		utils.ErrorResponse(c, http.StatusConflict, "COUPON_EXPIRED", err.Error())
	case models.ErrProductNotFound:
		utils.NotFoundResponse(c, "Product")
	case models.ErrInsufficientStock:
		utils.ErrorResponse(c, http.StatusConflict, "INSUFFICIENT_STOCK", err.Error())
	case models.ErrCartItemLimit:
		utils.ErrorResponse(c, http.StatusBadRequest, "QUANTITY_LIMIT", err.Error())
	case models.ErrCartItemNotFound:
		utils.NotFoundResponse(c, "Cart item")
	case models.ErrEmptyCart:
		utils.ErrorResponse(c, http.StatusBadRequest, "EMPTY_CART", err.Error())
	case models.ErrOrderNotFound:
		utils.NotFoundResponse(c, "Order")
	case models.ErrInvalidImage:
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_IMAGE", err.Error())
	case models.ErrPaymentDeclined:
		utils.ErrorResponse(c, http.StatusPaymentRequired, "PAYMENT_DECLINED", err.Error())
	case models.ErrStorageUnavailable:
		utils.ErrorResponse(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", err.Error())
	default:
		utils.InternalServerErrorResponse(c)
	}
}
