package validators

type CartAddRequest struct {
	ProductID string `json:"product_id" validate:"required,object_id"`
	Quantity  int    `json:"quantity" validate:"required,line_quantity"`
}

type CartUpdateRequest struct {
	Quantity int `json:"quantity" validate:"required,line_quantity"`
}

type CheckoutRequest struct {
	CouponCode string `json:"coupon_code" validate:"omitempty,coupon_code"`
}

func ValidateCartAdd(req *CartAddRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateCartUpdate(req *CartUpdateRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateCheckout(req *CheckoutRequest) ValidationErrors {
	return ValidateStruct(req)
}
