package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gocart/internal/models"
	"gocart/internal/repositories/interfaces"
	"gocart/internal/utils"
	"gocart/internal/validators"
	"gocart/pkg/logger"
	"gocart/pkg/storage"
)

type ProductService interface {
	ListProducts(ctx context.Context, filter *interfaces.ProductFilter, params *utils.PaginationParams) ([]*models.Product, int64, error)
	GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	ListCategories(ctx context.Context) ([]string, error)

	CreateProduct(ctx context.Context, request *validators.ProductCreateRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id primitive.ObjectID, request *validators.ProductUpdateRequest) (*models.Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error

	AdjustStock(ctx context.Context, id primitive.ObjectID, delta int, reason string) (*models.Product, error)
	UploadImage(ctx context.Context, id primitive.ObjectID, file multipart.File, header *multipart.FileHeader) (*models.Product, error)
}

type productService struct {
	productRepo interfaces.ProductRepository
	storage     storage.StorageProvider
	logger      *logger.Logger
}

func NewProductService(productRepo interfaces.ProductRepository, storageProvider storage.StorageProvider, log *logger.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		storage:     storageProvider,
		logger:      log,
	}
}

func (s *productService) ListProducts(ctx context.Context, filter *interfaces.ProductFilter, params *utils.PaginationParams) ([]*models.Product, int64, error) {
	return s.productRepo.List(ctx, filter, params)
}

func (s *productService) GetProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	return s.productRepo.GetByID(ctx, id)
}

func (s *productService) ListCategories(ctx context.Context) ([]string, error) {
	return s.productRepo.ListCategories(ctx)
}

func (s *productService) CreateProduct(ctx context.Context, request *validators.ProductCreateRequest) (*models.Product, error) {
	product := &models.Product{
		Title:       request.Title,
		Description: request.Description,
		Category:    request.Category,
		Price:       request.Price,
		Stock:       request.Stock,
		Featured:    request.Featured,
		OnSale:      request.OnSale,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id primitive.ObjectID, request *validators.ProductUpdateRequest) (*models.Product, error) {
	updates := make(map[string]interface{})
	if request.Title != nil {
		updates["title"] = *request.Title
	}
	if request.Description != nil {
		updates["description"] = *request.Description
	}
	if request.Category != nil {
		updates["category"] = *request.Category
	}
	if request.Price != nil {
		updates["price"] = *request.Price
	}
	if request.Stock != nil {
		updates["stock"] = *request.Stock
	}
	if request.Featured != nil {
		updates["featured"] = *request.Featured
	}
	if request.OnSale != nil {
		updates["on_sale"] = *request.OnSale
	}

	if len(updates) > 0 {
		if err := s.productRepo.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.productRepo.GetByID(ctx, id)
}

func (s *productService) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	return s.productRepo.Delete(ctx, id)
}

func (s *productService) AdjustStock(ctx context.Context, id primitive.ObjectID, delta int, reason string) (*models.Product, error) {
	product, err := s.productRepo.AdjustStock(ctx, id, delta)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"product_id": id.Hex(),
		"delta":      delta,
		"stock":      product.Stock,
		"reason":     reason,
		"event":      utils.EventStockAdjusted,
	}).Info("Product stock adjusted")

	return product, nil
}

func (s *productService) UploadImage(ctx context.Context, id primitive.ObjectID, file multipart.File, header *multipart.FileHeader) (*models.Product, error) {
	if !utils.IsValidImageFormat(header.Filename) || header.Size > utils.MaxImageSize {
		return nil, models.ErrInvalidImage
	}

	// Product must exist before spending the upload.
	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	img, err := utils.ResizeImage(file, header.Filename, utils.MaxProductImageWidth, 0)
	if err != nil {
		return nil, models.ErrInvalidImage
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if ext == "jpg" {
		ext = "jpeg"
	}

	var buf bytes.Buffer
	if err := utils.EncodeImage(img, ext, &buf, 85); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	key := fmt.Sprintf("products/%s.%s", id.Hex(), ext)
	uploaded, err := s.storage.Upload(ctx, &storage.UploadRequest{
		Key:         key,
		Reader:      &buf,
		ContentType: "image/" + ext,
		Size:        int64(buf.Len()),
	})
	if err != nil {
		s.logger.WithError(err).WithField("product_id", id.Hex()).Error("image upload failed")
		return nil, models.ErrStorageUnavailable
	}

	if err := s.productRepo.Update(ctx, id, map[string]interface{}{"image": uploaded.URL}); err != nil {
		return nil, err
	}

	return s.productRepo.GetByID(ctx, id)
}
