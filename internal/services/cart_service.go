package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gocart/internal/models"
	"gocart/internal/repositories/interfaces"
)

type CartService interface {
	GetCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error)
	AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error)
	UpdateItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error)
	ClearCart(ctx context.Context, userID primitive.ObjectID) error
}

type cartService struct {
	cartRepo    interfaces.CartRepository
	productRepo interfaces.ProductRepository
}

func NewCartService(cartRepo interfaces.CartRepository, productRepo interfaces.ProductRepository) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartService) GetCart(ctx context.Context, userID primitive.ObjectID) (*models.Cart, error) {
	return s.cartRepo.GetByUserID(ctx, userID)
}

func (s *cartService) AddItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	if quantity < models.MinLineQuantity || quantity > models.MaxLineQuantity {
		return nil, models.ErrCartItemLimit
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if existing := cart.FindItem(productID); existing != nil {
		// Adding an item already in the cart raises its quantity, capped
		// at the per-line maximum.
		newQuantity := existing.Quantity + quantity
		if newQuantity > models.MaxLineQuantity {
			return nil, models.ErrCartItemLimit
		}
		if !product.InStock(newQuantity) {
			return nil, models.ErrInsufficientStock
		}
		existing.Quantity = newQuantity
	} else {
		if !product.InStock(quantity) {
			return nil, models.ErrInsufficientStock
		}
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: product.ID,
			Title:     product.Title,
			UnitPrice: product.Price,
			Image:     product.Image,
			Quantity:  quantity,
		})
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *cartService) UpdateItem(ctx context.Context, userID, productID primitive.ObjectID, quantity int) (*models.Cart, error) {
	if quantity < models.MinLineQuantity || quantity > models.MaxLineQuantity {
		return nil, models.ErrCartItemLimit
	}

	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	item := cart.FindItem(productID)
	if item == nil {
		return nil, models.ErrCartItemNotFound
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.InStock(quantity) {
		return nil, models.ErrInsufficientStock
	}

	item.Quantity = quantity

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *cartService) RemoveItem(ctx context.Context, userID, productID primitive.ObjectID) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	found := false
	items := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID == productID {
			found = true
			continue
		}
		items = append(items, item)
	}
	if !found {
		return nil, models.ErrCartItemNotFound
	}
	cart.Items = items

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *cartService) ClearCart(ctx context.Context, userID primitive.ObjectID) error {
	return s.cartRepo.Clear(ctx, userID)
}
