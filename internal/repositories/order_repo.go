package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/conterGui/Aconchego-Pap/internal/common"
	"github.com/conterGui/Aconchego-Pap/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.OrderStatus) (time.Time, error)

	// Reporting
	Revenue(ctx context.Context, since *time.Time) (decimal.Decimal, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
	TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error)
}

type orderRepo struct {
	db Database
}

func NewOrderRepo(db Database) OrderRepository {
	return &orderRepo{db: db}
}

const orderColumns = `id, customer_name, customer_email, customer_address, customer_city, customer_phone, total_cents, status, created_at, updated_at`

func scanOrder(row pgx.Row) (*models.Order, error) {
	o := &models.Order{}
	var cents int64
	var status string
	if err := row.Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.CustomerAddress, &o.CustomerCity, &o.CustomerPhone,
		&cents, &status, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.TotalAmount = models.CentsToDecimal(cents)
	o.Status = models.OrderStatus(status)
	return o, nil
}

// Create writes the order and its items in one transaction. Every referenced product is
// locked FOR SHARE and re-checked for availability right before the insert, so a product
// disabled after the caller priced the order aborts the whole write.
func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := lockAvailableProducts(ctx, tx, order.ProductIDs()); err != nil {
		return err
	}

	insertOrder := `
		INSERT INTO orders (id, customer_name, customer_email, customer_address, customer_city, customer_phone, total_cents, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	if _, err := tx.Exec(ctx, insertOrder, order.ID, order.CustomerName, order.CustomerEmail, order.CustomerAddress,
		order.CustomerCity, order.CustomerPhone, models.DecimalToCents(order.TotalAmount), string(order.Status), order.CreatedAt, order.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	insertItem := `
		INSERT INTO order_items (order_id, position, product_id, product_name, quantity, unit_price_cents)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i, item := range order.Items {
		if _, err := tx.Exec(ctx, insertItem, order.ID, i, item.ProductID, item.ProductName, item.Quantity,
			models.DecimalToCents(item.Price)); err != nil {
			return fmt.Errorf("failed to insert order item %d: %w", i, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}
	return nil
}

func lockAvailableProducts(ctx context.Context, tx pgx.Tx, ids []uuid.UUID) error {
	rows, err := tx.Query(ctx, `SELECT id, available FROM products WHERE id = ANY($1) FOR SHARE`, ids)
	if err != nil {
		return fmt.Errorf("failed to lock products: %w", err)
	}
	defer rows.Close()

	available := make(map[uuid.UUID]bool, len(ids))
	for rows.Next() {
		var id uuid.UUID
		var ok bool
		if err := rows.Scan(&id, &ok); err != nil {
			return err
		}
		available[id] = ok
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, id := range ids {
		ok, found := available[id]
		if !found {
			return &common.ProductUnavailableError{ProductID: id.String(), Reason: "product does not exist"}
		}
		if !ok {
			return &common.ProductUnavailableError{ProductID: id.String(), Reason: "product is not available"}
		}
	}
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFound(err, "order")
	}
	if err := r.attachItems(ctx, []*models.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

// List returns orders newest first.
func (r *orderRepo) List(ctx context.Context, filter models.OrderFilter) ([]*models.Order, error) {
	limit, offset := common.ValidatePaginationParams(filter.Limit, filter.Offset)

	query := `SELECT ` + orderColumns + ` FROM orders`
	args := []any{}
	if filter.Status != nil {
		query += ` WHERE status = $1`
		args = append(args, string(*filter.Status))
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	orders := []*models.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		orders = append(orders, order)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepo) attachItems(ctx context.Context, orders []*models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	byID := make(map[uuid.UUID]*models.Order, len(orders))
	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
		o.Items = []models.OrderItem{}
	}

	query := `
		SELECT order_id, position, product_id, product_name, quantity, unit_price_cents
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, position
	`
	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		var cents int64
		if err := rows.Scan(&item.OrderID, &item.Position, &item.ProductID, &item.ProductName, &item.Quantity, &cents); err != nil {
			return err
		}
		item.Price = models.CentsToDecimal(cents)
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

// UpdateStatus moves the order from one status to another only if it is still in from.
// Zero affected rows means someone else changed it first.
func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to models.OrderStatus) (time.Time, error) {
	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING updated_at
	`
	var updatedAt time.Time
	err := r.db.QueryRow(ctx, query, string(to), id, string(from)).Scan(&updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, fmt.Errorf("order %s is no longer %s: %w", id, from, common.ErrInvalidTransition)
	}
	return updatedAt, err
}

// Revenue sums orders that were not cancelled, optionally only those created at or after since.
func (r *orderRepo) Revenue(ctx context.Context, since *time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(total_cents), 0) FROM orders WHERE status <> 'cancelled'`
	args := []any{}
	if since != nil {
		query += ` AND created_at >= $1`
		args = append(args, *since)
	}
	var cents int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&cents); err != nil {
		return decimal.Zero, err
	}
	return models.CentsToDecimal(cents), nil
}

func (r *orderRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := r.db.Query(ctx, `SELECT status, COUNT(*) FROM orders GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := map[string]int{
		string(models.OrderStatusPending):   0,
		string(models.OrderStatusCompleted): 0,
		string(models.OrderStatusCancelled): 0,
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}

// TopProducts ranks products by units sold across orders that were not cancelled.
func (r *orderRepo) TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error) {
	query := `
		SELECT oi.product_id, MAX(oi.product_name), SUM(oi.quantity), SUM(oi.quantity * oi.unit_price_cents)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status <> 'cancelled'
		GROUP BY oi.product_id
		ORDER BY SUM(oi.quantity) DESC, MAX(oi.product_name)
		LIMIT $1
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	top := []models.TopProduct{}
	for rows.Next() {
		var p models.TopProduct
		var cents int64
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.UnitsSold, &cents); err != nil {
			return nil, err
		}
		p.Revenue = models.CentsToDecimal(cents)
		top = append(top, p)
	}
	return top, rows.Err()
}
