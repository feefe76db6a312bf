package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/conterGui/Aconchego-Pap/internal/common"
	"github.com/conterGui/Aconchego-Pap/internal/events"
	"github.com/conterGui/Aconchego-Pap/internal/models"
	"github.com/conterGui/Aconchego-Pap/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	notificationTimeout = 30 * time.Second
	maxCustomerField    = 200
)

type OrderService interface {
	PlaceOrder(ctx context.Context, input models.PlaceOrderInput) (*models.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error)
}

type orderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	notifier    NotificationService
	publisher   events.Publisher
	// dispatch runs the confirmation send; tests replace it to wait for completion.
	dispatch func(func())
}

func NewOrderService(orderRepo repositories.OrderRepository, productRepo repositories.ProductRepository, notifier NotificationService, publisher events.Publisher) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		notifier:    notifier,
		publisher:   publisher,
		dispatch:    func(f func()) { go f() },
	}
}

func validateCustomer(c *models.CustomerInfo) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Address = strings.TrimSpace(c.Address)
	c.City = strings.TrimSpace(c.City)

	fields := []struct{ value, name string }{
		{c.Name, "customer_name"},
		{c.Address, "customer_address"},
		{c.City, "customer_city"},
	}
	for _, f := range fields {
		if err := common.ValidateRequiredString(f.value, f.name); err != nil {
			return err
		}
		if err := common.ValidateMaxLength(f.value, f.name, maxCustomerField); err != nil {
			return err
		}
	}
	if err := common.ValidateEmail(c.Email, "customer_email"); err != nil {
		return err
	}
	if c.Phone != nil {
		phone := strings.TrimSpace(*c.Phone)
		if phone == "" {
			c.Phone = nil
		} else {
			c.Phone = &phone
		}
	}
	return nil
}

// mergeLines validates the submitted lines and folds repeated products into their first occurrence.
func mergeLines(lines []models.OrderLine) ([]models.OrderLine, error) {
	if len(lines) == 0 {
		return nil, common.NewValidationError("items", "at least one item is required")
	}

	merged := make([]models.OrderLine, 0, len(lines))
	index := make(map[uuid.UUID]int, len(lines))
	for i, line := range lines {
		if line.ProductID == uuid.Nil {
			return nil, common.NewValidationError(fmt.Sprintf("items[%d].product_id", i), "is required")
		}
		if line.Quantity < 1 {
			return nil, common.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "must be at least 1")
		}
		if pos, ok := index[line.ProductID]; ok {
			merged[pos].Quantity += line.Quantity
		} else {
			index[line.ProductID] = len(merged)
			merged = append(merged, line)
		}
	}
	return merged, nil
}

// PlaceOrder prices every line from the catalog, never from the client, and persists a pending order.
// A missing or unavailable product rejects the whole order before anything is written.
func (s *orderService) PlaceOrder(ctx context.Context, input models.PlaceOrderInput) (*models.Order, error) {
	customer := input.Customer
	if err := validateCustomer(&customer); err != nil {
		return nil, err
	}
	lines, err := mergeLines(input.Lines)
	if err != nil {
		return nil, err
	}

	items := make([]models.OrderItem, 0, len(lines))
	total := decimal.Zero
	for _, line := range lines {
		product, err := s.productRepo.GetByID(ctx, line.ProductID)
		if errors.Is(err, common.ErrNotFound) {
			return nil, &common.ProductUnavailableError{ProductID: line.ProductID.String(), Reason: "product does not exist"}
		}
		if err != nil {
			return nil, fmt.Errorf("failed to look up product %s: %w", line.ProductID, err)
		}
		if !product.Available {
			return nil, &common.ProductUnavailableError{ProductID: line.ProductID.String(), Reason: "product is not available"}
		}

		item := models.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			Price:       product.Price,
		}
		total = total.Add(item.LineTotal())
		items = append(items, item)
	}

	now := time.Now().UTC()
	order := &models.Order{
		ID:              uuid.New(),
		CustomerName:    customer.Name,
		CustomerEmail:   customer.Email,
		CustomerAddress: customer.Address,
		CustomerCity:    customer.City,
		CustomerPhone:   customer.Phone,
		Items:           items,
		TotalAmount:     total,
		Status:          models.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
		order.Items[i].Position = i
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	log.Info().Str("order_id", order.ID.String()).Str("total", order.TotalAmount.StringFixed(2)).Int("items", len(order.Items)).Msg("Order placed")

	s.sendConfirmation(order)
	s.publisher.PublishOrderEvent(ctx, orderEvent(models.EventOrderCreated, order))
	return order, nil
}

// sendConfirmation makes one attempt with its own deadline. Failures are logged and never reach the customer.
func (s *orderService) sendConfirmation(order *models.Order) {
	s.dispatch(func() {
		ctx, cancel := context.WithTimeout(context.Background(), notificationTimeout)
		defer cancel()
		if err := s.notifier.SendOrderConfirmation(ctx, order); err != nil {
			log.Error().Err(err).Str("order_id", order.ID.String()).Msg("Failed to send order confirmation")
			return
		}
		log.Debug().Str("order_id", order.ID.String()).Msg("Order confirmation sent")
	})
}

func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return s.orderRepo.GetByID(ctx, id)
}

func (s *orderService) List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, common.NewValidationError("status", "must be one of: pending, completed, cancelled")
	}
	return s.orderRepo.List(ctx, filter)
}

// UpdateStatus applies an admin transition. Items and total are left untouched.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) (*models.Order, error) {
	if !status.IsValid() {
		return nil, common.NewValidationError("status", "must be one of: pending, completed, cancelled")
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("can only complete or cancel orders with status 'pending', current status: %s: %w", order.Status, common.ErrInvalidTransition)
	}

	updatedAt, err := s.orderRepo.UpdateStatus(ctx, id, order.Status, status)
	if err != nil {
		return nil, err
	}
	previous := order.Status
	order.Status = status
	order.UpdatedAt = updatedAt

	log.Info().Str("order_id", id.String()).Str("from", string(previous)).Str("to", string(status)).Msg("Order status updated")
	s.publisher.PublishOrderEvent(ctx, orderEvent(models.EventOrderStatusChanged, order))
	return order, nil
}

func orderEvent(eventType string, order *models.Order) models.OrderEvent {
	return models.OrderEvent{
		Type:        eventType,
		OrderID:     order.ID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		OccurredAt:  time.Now().UTC(),
	}
}
