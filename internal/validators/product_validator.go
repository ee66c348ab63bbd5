package validators

import "strings"

type ProductCreateRequest struct {
	Title       string  `json:"title" validate:"required,min=2,max=120"`
	Description string  `json:"description" validate:"required,min=10,max=2000"`
	Category    string  `json:"category" validate:"required,min=2,max=50"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	Featured    bool    `json:"featured"`
	OnSale      bool    `json:"on_sale"`
}

type ProductUpdateRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=2,max=120"`
	Description *string  `json:"description" validate:"omitempty,min=10,max=2000"`
	Category    *string  `json:"category" validate:"omitempty,min=2,max=50"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	Featured    *bool    `json:"featured"`
	OnSale      *bool    `json:"on_sale"`
}

type StockAdjustRequest struct {
	Delta  int    `json:"delta" validate:"required"`
	Reason string `json:"reason" validate:"omitempty,max=200"`
}

func ValidateProductCreate(req *ProductCreateRequest) ValidationErrors {
	req.Title = strings.TrimSpace(req.Title)
	req.Category = strings.ToLower(strings.TrimSpace(req.Category))

	return ValidateStruct(req)
}

func ValidateProductUpdate(req *ProductUpdateRequest) ValidationErrors {
	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		req.Title = &trimmed
	}
	if req.Category != nil {
		normalized := strings.ToLower(strings.TrimSpace(*req.Category))
		req.Category = &normalized
	}

	return ValidateStruct(req)
}

func ValidateStockAdjust(req *StockAdjustRequest) ValidationErrors {
	errors := ValidateStruct(req)

	if req.Delta == 0 {
		errors = append(errors, ValidationError{
			Field:   "delta",
			Message: "Stock adjustment must not be zero",
		})
	}

	return errors
}
