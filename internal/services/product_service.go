package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/conterGui/Aconchego-Pap/internal/caching"
	"github.com/conterGui/Aconchego-Pap/internal/common"
	"github.com/conterGui/Aconchego-Pap/internal/models"
	"github.com/conterGui/Aconchego-Pap/internal/repositories"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	productCacheTTL  = 10 * time.Minute
	menuCacheTTL     = 5 * time.Minute
	imageURLExpiry   = 24 * time.Hour
	maxImageSize     = 5 << 20
	maxProductName   = 120
	maxProductDetail = 1000
)

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

var ErrImageStorageDisabled = errors.New("image storage is not configured")

type ProductService interface {
	Create(ctx context.Context, input models.ProductInput) (*models.Product, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	Update(ctx context.Context, id uuid.UUID, input models.ProductInput) (*models.Product, error)
	SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*models.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error)

	// Public menu
	Menu(ctx context.Context, category string) ([]*models.Product, error)
	GetMenuItem(ctx context.Context, id uuid.UUID) (*models.Product, error)
	WarmMenuCache(ctx context.Context) error

	UploadImage(ctx context.Context, id uuid.UUID, filename, contentType string, reader io.Reader, size int64) (*models.Product, error)
}

type productService struct {
	productRepo  repositories.ProductRepository
	minioService MinioService
	cacheService caching.CacheService
}

// NewProductService accepts a nil minioService when image storage is not configured.
func NewProductService(productRepo repositories.ProductRepository, minioService MinioService, cacheService caching.CacheService) ProductService {
	return &productService{
		productRepo:  productRepo,
		minioService: minioService,
		cacheService: cacheService,
	}
}

func validateProductInput(input *models.ProductInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)
	input.Category = strings.ToLower(strings.TrimSpace(input.Category))

	if err := common.ValidateRequiredString(input.Name, "name"); err != nil {
		return err
	}
	if err := common.ValidateMaxLength(input.Name, "name", maxProductName); err != nil {
		return err
	}
	if err := common.ValidateMaxLength(input.Description, "description", maxProductDetail); err != nil {
		return err
	}
	if input.Price.IsNegative() {
		return common.NewValidationError("price", "cannot be negative")
	}
	if !models.HasCentPrecision(input.Price) {
		return common.NewValidationError("price", "cannot have more than 2 decimal places")
	}
	if !models.IsValidCategory(input.Category) {
		return common.NewValidationError("category", "must be one of: "+strings.Join(models.ValidCategories, ", "))
	}
	return nil
}

func (s *productService) Create(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	if err := validateProductInput(&input); err != nil {
		return nil, err
	}
	product := &models.Product{
		ID:          uuid.New(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Available:   input.Available == nil || *input.Available,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	s.invalidate(ctx, product.ID)
	return product, nil
}

func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if cached, err := s.cacheService.GetProduct(ctx, id); err != nil {
		log.Warn().Err(err).Str("product_id", id.String()).Msg("Product cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.attachImageURL(ctx, product)
	if err := s.cacheService.SetProduct(ctx, product, productCacheTTL); err != nil {
		log.Warn().Err(err).Str("product_id", id.String()).Msg("Product cache write failed")
	}
	return product, nil
}

func (s *productService) GetMenuItem(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.Available {
		return nil, fmt.Errorf("product: %w", common.ErrNotFound)
	}
	return product, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, input models.ProductInput) (*models.Product, error) {
	if err := validateProductInput(&input); err != nil {
		return nil, err
	}
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Category = input.Category
	if input.Available != nil {
		product.Available = *input.Available
	}
	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	s.attachImageURL(ctx, product)
	return product, nil
}

func (s *productService) SetAvailability(ctx context.Context, id uuid.UUID, available bool) (*models.Product, error) {
	if err := s.productRepo.SetAvailability(ctx, id, available); err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return s.GetByID(ctx, id)
}

// Delete removes the product. Past orders keep their own copy of name and price.
func (s *productService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)

	if product.ImageKey != nil && s.minioService != nil {
		if err := s.minioService.DeleteImage(ctx, *product.ImageKey); err != nil {
			log.Warn().Err(err).Str("object", *product.ImageKey).Msg("Failed to delete product image from storage")
		}
	}
	return nil
}

func (s *productService) List(ctx context.Context, filter models.ProductFilter) ([]*models.Product, error) {
	if filter.Category != nil && !models.IsValidCategory(*filter.Category) {
		return nil, common.NewValidationError("category", "unknown category")
	}
	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		s.attachImageURL(ctx, p)
	}
	return products, nil
}

// Menu lists available products, optionally for one category, through the cache.
func (s *productService) Menu(ctx context.Context, category string) ([]*models.Product, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category != "" && !models.IsValidCategory(category) {
		return nil, common.NewValidationError("category", "unknown category")
	}

	if cached, err := s.cacheService.GetMenu(ctx, category); err != nil {
		log.Warn().Err(err).Str("category", category).Msg("Menu cache read failed")
	} else if cached != nil {
		return cached, nil
	}

	products, err := s.loadMenu(ctx, category)
	if err != nil {
		return nil, err
	}
	if err := s.cacheService.SetMenu(ctx, category, products, menuCacheTTL); err != nil {
		log.Warn().Err(err).Str("category", category).Msg("Menu cache write failed")
	}
	return products, nil
}

func (s *productService) loadMenu(ctx context.Context, category string) ([]*models.Product, error) {
	filter := models.ProductFilter{AvailableOnly: true, Limit: common.MaxPageLimit}
	if category != "" {
		filter.Category = &category
	}
	return s.List(ctx, filter)
}

// WarmMenuCache rebuilds the whole-menu and per-category cache entries.
func (s *productService) WarmMenuCache(ctx context.Context) error {
	categories := append([]string{""}, models.ValidCategories...)
	for _, category := range categories {
		products, err := s.loadMenu(ctx, category)
		if err != nil {
			return fmt.Errorf("failed to load menu %q: %w", category, err)
		}
		if err := s.cacheService.SetMenu(ctx, category, products, menuCacheTTL); err != nil {
			return fmt.Errorf("failed to cache menu %q: %w", category, err)
		}
	}
	return nil
}

// UploadImage stores the image under products/<id>/<uuid><ext> and replaces any previous image.
func (s *productService) UploadImage(ctx context.Context, id uuid.UUID, filename, contentType string, reader io.Reader, size int64) (*models.Product, error) {
	if s.minioService == nil {
		return nil, ErrImageStorageDisabled
	}
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, common.NewValidationError("image", "must be a JPEG, PNG or WebP image")
	}
	if size <= 0 || size > maxImageSize {
		return nil, common.NewValidationError("image", fmt.Sprintf("must be between 1 byte and %d bytes", maxImageSize))
	}
	if fileExt := strings.ToLower(filepath.Ext(filename)); fileExt == ".jpeg" || fileExt == ".jpg" || fileExt == ".png" || fileExt == ".webp" {
		ext = fileExt
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	objectKey := fmt.Sprintf("products/%s/%s%s", id, uuid.NewString(), ext)
	if err := s.minioService.EnsureBucketExists(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure bucket exists: %w", err)
	}
	if err := s.minioService.UploadImage(ctx, objectKey, contentType, reader, size); err != nil {
		return nil, fmt.Errorf("failed to upload image to storage: %w", err)
	}
	if err := s.productRepo.SetImage(ctx, id, objectKey); err != nil {
		return nil, err
	}

	if product.ImageKey != nil {
		if err := s.minioService.DeleteImage(ctx, *product.ImageKey); err != nil {
			log.Warn().Err(err).Str("object", *product.ImageKey).Msg("Failed to delete previous product image")
		}
	}
	product.ImageKey = &objectKey
	s.invalidate(ctx, id)
	s.attachImageURL(ctx, product)
	return product, nil
}

func (s *productService) attachImageURL(ctx context.Context, product *models.Product) {
	if product.ImageKey == nil || s.minioService == nil {
		return
	}
	url, err := s.minioService.GetPresignedURL(ctx, *product.ImageKey, imageURLExpiry)
	if err != nil {
		log.Warn().Err(err).Str("product_id", product.ID.String()).Msg("Failed to presign product image")
		return
	}
	product.ImageURL = url
}

func (s *productService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cacheService.DeleteProduct(ctx, id); err != nil {
		log.Warn().Err(err).Str("product_id", id.String()).Msg("Product cache invalidation failed")
	}
	if err := s.cacheService.InvalidateMenu(ctx); err != nil {
		log.Warn().Err(err).Msg("Menu cache invalidation failed")
	}
}
