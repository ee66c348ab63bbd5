package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gocart/internal/repositories/interfaces"
	"gocart/internal/services"
	"gocart/internal/utils"
	"gocart/internal/validators"
)

type ProductHandler struct {
	productService services.ProductService
}

func NewProductHandler(productService services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// ListProducts returns the paginated catalog, optionally filtered by
// category, featured or on_sale
func (h *ProductHandler) ListProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := &interfaces.ProductFilter{
		Category: c.Query("category"),
	}
	if value := c.Query("featured"); value != "" {
		featured, err := strconv.ParseBool(value)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid featured flag")
			return
		}
		filter.Featured = &featured
	}
	if value := c.Query("on_sale"); value != "" {
		onSale, err := strconv.ParseBool(value)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid on_sale flag")
			return
		}
		filter.OnSale = &onSale
	}

	products, total, err := h.productService.ListProducts(c.Request.Context(), filter, params)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Products retrieved", products, &utils.Meta{
		Pagination: utils.CreatePaginationMeta(params, total),
	})
}

// GetProduct returns a single product by ID
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), productID)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Product retrieved", product)
}

// ListCategories returns the distinct product categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.productService.ListCategories(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Categories retrieved", categories)
}

// CreateProduct adds a product to the catalog (admin only)
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var request validators.ProductCreateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateProductCreate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &request)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.CreatedResponse(c, "Product created", product)
}

// UpdateProduct modifies catalog fields (admin only)
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID")
		return
	}

	var request validators.ProductUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateProductUpdate(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), productID, &request)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Product updated", product)
}

// DeleteProduct removes a product from the catalog (admin only)
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), productID); err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Product deleted", nil)
}

// AdjustStock applies a signed stock delta (admin only)
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID")
		return
	}

	var request validators.StockAdjustRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if errs := validators.ValidateStockAdjust(&request); len(errs) > 0 {
		utils.ValidationErrorResponse(c, validationDetails(errs))
		return
	}

	product, err := h.productService.AdjustStock(c.Request.Context(), productID, request.Delta, request.Reason)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Stock adjusted", product)
}

// UploadImage attaches a resized product image (admin only)
func (h *ProductHandler) UploadImage(c *gin.Context) {
	productID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product ID")
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "Image file required")
		return
	}
	defer file.Close()

	product, err := h.productService.UploadImage(c.Request.Context(), productID, file, header)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	utils.SuccessResponse(c, "Image uploaded", product)
}
