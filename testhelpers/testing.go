package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/conterGui/Aconchego-Pap/internal/models"
	"github.com/conterGui/Aconchego-Pap/pkg/database"
)

// TestDB holds the database connection for testing
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB connects to TEST_DATABASE_URL, migrates it and empties the
// mutable tables. Tests are skipped when the variable is unset.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := database.Migrate(ctx, pool); err != nil {
		pool.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	db := &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
	ResetTables(t, db)
	return db
}

// ResetTables deletes orders, reservations and products. The seeded floor plan stays.
func ResetTables(t *testing.T, db *TestDB) {
	t.Helper()

	_, err := db.Pool.Exec(context.Background(), `TRUNCATE order_items, orders, reservations, products`)
	if err != nil {
		t.Fatalf("Failed to reset tables: %v", err)
	}
}

// SetupTestProduct inserts an available product priced at price (e.g. "4.50").
func SetupTestProduct(t *testing.T, db *TestDB, name, price string) *models.Product {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	product := &models.Product{
		ID:          uuid.New(),
		Name:        name,
		Description: "Test product description",
		Price:       decimal.RequireFromString(price),
		Category:    models.CategoryCafes,
		Available:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	query := `
		INSERT INTO products (id, name, description, price_cents, category, available, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := db.Pool.Exec(context.Background(), query,
		product.ID, product.Name, product.Description, models.DecimalToCents(product.Price),
		product.Category, product.Available, product.CreatedAt, product.UpdatedAt)
	if err != nil {
		t.Fatalf("Failed to create test product: %v", err)
	}

	return product
}
