package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/conterGui/Aconchego-Pap/internal/caching"
	"github.com/conterGui/Aconchego-Pap/internal/common"
	"github.com/conterGui/Aconchego-Pap/internal/models"
	"github.com/conterGui/Aconchego-Pap/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const cartTTL = 7 * 24 * time.Hour

type CartService interface {
	Create(ctx context.Context) (*models.CartView, error)
	Get(ctx context.Context, cartID string) (*models.CartView, error)
	AddItem(ctx context.Context, cartID string, productID uuid.UUID, quantity int) (*models.CartView, error)
	SetQuantity(ctx context.Context, cartID string, productID uuid.UUID, quantity int) (*models.CartView, error)
	RemoveItem(ctx context.Context, cartID string, productID uuid.UUID) (*models.CartView, error)
	Delete(ctx context.Context, cartID string) error
	Checkout(ctx context.Context, cartID string, customer models.CustomerInfo) (*models.Order, error)
}

type cartService struct {
	cacheService caching.CacheService
	productRepo  repositories.ProductRepository
	orderService OrderService
}

func NewCartService(cacheService caching.CacheService, productRepo repositories.ProductRepository, orderService OrderService) CartService {
	return &cartService{
		cacheService: cacheService,
		productRepo:  productRepo,
		orderService: orderService,
	}
}

func (s *cartService) Create(ctx context.Context) (*models.CartView, error) {
	cart := &models.Cart{ID: uuid.NewString(), Lines: []models.CartLine{}, UpdatedAt: time.Now().UTC()}
	if err := s.cacheService.CreateCart(ctx, cart, cartTTL); err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return s.view(ctx, cart)
}

func (s *cartService) Get(ctx context.Context, cartID string) (*models.CartView, error) {
	cart, err := s.cacheService.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

// AddItem only accepts products that can currently be ordered.
func (s *cartService) AddItem(ctx context.Context, cartID string, productID uuid.UUID, quantity int) (*models.CartView, error) {
	if quantity < 1 {
		return nil, common.NewValidationError("quantity", "must be at least 1")
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, &common.ProductUnavailableError{ProductID: productID.String(), Reason: "product does not exist"}
	}
	if err != nil {
		return nil, err
	}
	if !product.Available {
		return nil, &common.ProductUnavailableError{ProductID: productID.String(), Reason: "product is not available"}
	}

	cart, err := s.cacheService.UpdateCart(ctx, cartID, cartTTL, func(c *models.Cart) error {
		return c.Add(productID, quantity)
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

func (s *cartService) SetQuantity(ctx context.Context, cartID string, productID uuid.UUID, quantity int) (*models.CartView, error) {
	if quantity < 1 {
		return nil, common.NewValidationError("quantity", "must be at least 1")
	}
	cart, err := s.cacheService.UpdateCart(ctx, cartID, cartTTL, func(c *models.Cart) error {
		if err := c.SetQuantity(productID, quantity); err != nil {
			return fmt.Errorf("cart line %s: %w", productID, common.ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

func (s *cartService) RemoveItem(ctx context.Context, cartID string, productID uuid.UUID) (*models.CartView, error) {
	cart, err := s.cacheService.UpdateCart(ctx, cartID, cartTTL, func(c *models.Cart) error {
		c.Remove(productID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.view(ctx, cart)
}

func (s *cartService) Delete(ctx context.Context, cartID string) error {
	return s.cacheService.DeleteCart(ctx, cartID)
}

// Checkout submits only (product, quantity) pairs; the reconciler prices them. The cart is cleared on success.
func (s *cartService) Checkout(ctx context.Context, cartID string, customer models.CustomerInfo) (*models.Order, error) {
	cart, err := s.cacheService.GetCart(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if len(cart.Lines) == 0 {
		return nil, common.NewValidationError("items", "cart is empty")
	}

	order, err := s.orderService.PlaceOrder(ctx, models.PlaceOrderInput{Customer: customer, Lines: cart.OrderLines()})
	if err != nil {
		return nil, err
	}
	if err := s.cacheService.DeleteCart(ctx, cartID); err != nil {
		log.Warn().Err(err).Str("cart_id", cartID).Msg("Failed to clear cart after checkout")
	}
	return order, nil
}

// view prices the cart against the catalog. The total is advisory and counts only available products.
func (s *cartService) view(ctx context.Context, cart *models.Cart) (*models.CartView, error) {
	ids := make([]uuid.UUID, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		ids = append(ids, l.ProductID)
	}
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	view := &models.CartView{ID: cart.ID, Items: make([]models.CartItemView, 0, len(cart.Lines)), TotalPrice: decimal.Zero}
	for _, l := range cart.Lines {
		item := models.CartItemView{ProductID: l.ProductID, Quantity: l.Quantity, Price: decimal.Zero, LineTotal: decimal.Zero}
		if p, ok := products[l.ProductID]; ok {
			item.Name = p.Name
			item.Price = p.Price
			item.Available = p.Available
			item.LineTotal = p.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		}
		if item.Available {
			view.TotalPrice = view.TotalPrice.Add(item.LineTotal)
		}
		view.TotalItems += l.Quantity
		view.Items = append(view.Items, item)
	}
	return view, nil
}
