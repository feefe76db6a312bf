package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/conterGui/Aconchego-Pap/internal/common"
	"github.com/conterGui/Aconchego-Pap/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ProductRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    ProductRepository
	context context.Context
}

func (suite *ProductRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewProductRepo(mock)
	suite.context = context.Background()
}

func (suite *ProductRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestProductRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ProductRepoTestSuite))
}

func productRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "name", "description", "price_cents", "category", "image_key", "available", "created_at", "updated_at"})
}

func (suite *ProductRepoTestSuite) TestCreate_StoresCents() {
	product := &models.Product{
		ID:        uuid.New(),
		Name:      "Espresso",
		Price:     decimal.RequireFromString("0.90"),
		Category:  models.CategoryCafes,
		Available: true,
	}
	now := time.Now()

	suite.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO products`)).
		WithArgs(product.ID, "Espresso", "", int64(90), "cafes", product.ImageKey, true).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	assert.NoError(suite.T(), suite.repo.Create(suite.context, product))
	assert.Equal(suite.T(), now, product.CreatedAt)
}

func (suite *ProductRepoTestSuite) TestGetByIDs() {
	a, b := uuid.New(), uuid.New()
	now := time.Now()
	key := "products/a.jpg"

	suite.mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE id = ANY($1)`)).
		WithArgs([]uuid.UUID{a, b}).
		WillReturnRows(productRows().
			AddRow(a, "Galão", "com leite", int64(180), "cafes", &key, true, now, now))

	products, err := suite.repo.GetByIDs(suite.context, []uuid.UUID{a, b})
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), products, 1)
	assert.Equal(suite.T(), "1.80", products[a].Price.StringFixed(2))
	_, found := products[b]
	assert.False(suite.T(), found)
}

func (suite *ProductRepoTestSuite) TestList_AvailableInCategory() {
	category := models.CategoryDoces
	suite.mock.ExpectQuery(regexp.QuoteMeta(`FROM products WHERE category = $1 AND available = TRUE ORDER BY category, name LIMIT $2 OFFSET $3`)).
		WithArgs("doces", common.DefaultPageLimit, 0).
		WillReturnRows(productRows())

	products, err := suite.repo.List(suite.context, models.ProductFilter{Category: &category, AvailableOnly: true})
	assert.NoError(suite.T(), err)
	assert.Empty(suite.T(), products)
}

func (suite *ProductRepoTestSuite) TestSetAvailability_NotFound() {
	id := uuid.New()
	suite.mock.ExpectExec(regexp.QuoteMeta(`UPDATE products SET available = $1`)).
		WithArgs(false, id).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := suite.repo.SetAvailability(suite.context, id, false)
	assert.True(suite.T(), errors.Is(err, common.ErrNotFound))
}

func (suite *ProductRepoTestSuite) TestDelete() {
	id := uuid.New()
	suite.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM products WHERE id = $1`)).
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(suite.T(), suite.repo.Delete(suite.context, id))
}

func TestUserRepo_EnsureAdmin(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	user := &models.AdminUser{ID: uuid.New(), Email: "Admin@Aconchego.pt", Name: "Admin", PasswordHash: "hash"}
	mock.ExpectExec(regexp.QuoteMeta(`ON CONFLICT (email) DO NOTHING`)).
		WithArgs(user.ID, "admin@aconchego.pt", "Admin", "hash").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	created, err := NewUserRepo(mock).EnsureAdmin(context.Background(), user)
	assert.NoError(t, err)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}
