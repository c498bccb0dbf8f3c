package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"checkout-service/internal/models"
	"checkout-service/pkg/common"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

const productListCacheKey = "products:active:page1"

// ProductService owns the catalog. The redis client is optional; a nil
// client disables caching.
type ProductService struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewProductService(db *gorm.DB, redisClient *redis.Client) *ProductService {
	return &ProductService{DB: db, Redis: redisClient}
}

// FindOne returns an active product by id.
func (s *ProductService) FindOne(id uint) (*models.Product, error) {
	var product models.Product
	err := s.DB.Where("id = ? AND is_active = ?", id, true).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll lists active products, newest first. The first default-sized page
// is served from redis when available.
func (s *ProductService) FindAll(page, limit int) (common.PaginationResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	if cached, ok := s.cachedFirstPage(page, limit); ok {
		return cached, nil
	}

	var products []models.Product
	var total int64

	query := s.DB.Model(&models.Product{}).Where("is_active = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return common.PaginationResult{}, err
	}
	if err := query.Order("created_at desc").Offset((page - 1) * limit).Limit(limit).Find(&products).Error; err != nil {
		return common.PaginationResult{}, err
	}

	result := common.PaginateResponse(products, total, page, limit, "")
	s.cacheFirstPage(page, limit, result)
	return result, nil
}

func (s *ProductService) cachedFirstPage(page, limit int) (common.PaginationResult, bool) {
	if s.Redis == nil || page != 1 || limit != 20 {
		return common.PaginationResult{}, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	raw, err := s.Redis.Get(ctx, productListCacheKey).Result()
	if err != nil {
		return common.PaginationResult{}, false
	}
	var result common.PaginationResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return common.PaginationResult{}, false
	}
	return result, true
}

func (s *ProductService) cacheFirstPage(page, limit int, result common.PaginationResult) {
	if s.Redis == nil || page != 1 || limit != 20 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if raw, err := json.Marshal(result); err == nil {
		s.Redis.Set(ctx, productListCacheKey, raw, 60*time.Second)
	}
}

func (s *ProductService) invalidateCache() {
	if s.Redis == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	s.Redis.Del(ctx, productListCacheKey)
}

type CreateProductDTO struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	ImageUrl    string  `json:"image_url"`
	Stock       int     `json:"stock" binding:"gte=0"`
}

func (s *ProductService) Create(dto CreateProductDTO) (*models.Product, error) {
	product := models.Product{
		Name:        dto.Name,
		Description: dto.Description,
		Price:       dto.Price,
		ImageUrl:    dto.ImageUrl,
		Stock:       dto.Stock,
		IsActive:    true,
	}
	if err := s.DB.Create(&product).Error; err != nil {
		return nil, err
	}
	s.invalidateCache()
	return &product, nil
}

type UpdateProductDTO struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageUrl    *string  `json:"image_url"`
	Stock       *int     `json:"stock"`
}

func (s *ProductService) Update(id uint, dto UpdateProductDTO) (*models.Product, error) {
	product, err := s.FindOne(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if dto.Name != nil {
		updates["name"] = *dto.Name
	}
	if dto.Description != nil {
		updates["description"] = *dto.Description
	}
	if dto.Price != nil {
		if *dto.Price <= 0 {
			return nil, fmt.Errorf("price must be positive")
		}
		updates["price"] = *dto.Price
	}
	if dto.ImageUrl != nil {
		updates["image_url"] = *dto.ImageUrl
	}
	if dto.Stock != nil {
		if *dto.Stock < 0 {
			return nil, fmt.Errorf("stock must not be negative")
		}
		updates["stock"] = *dto.Stock
	}

	if len(updates) > 0 {
		if err := s.DB.Model(product).Updates(updates).Error; err != nil {
			return nil, err
		}
		s.invalidateCache()
	}
	return product, nil
}

// Remove soft-deletes a product. Existing transactions keep referencing it.
func (s *ProductService) Remove(id uint) error {
	product, err := s.FindOne(id)
	if err != nil {
		return err
	}
	if err := s.DB.Model(product).Update("is_active", false).Error; err != nil {
		return err
	}
	s.invalidateCache()
	return nil
}

// DecrementStock applies a conditional decrement in a single UPDATE so two
// concurrent approvals cannot drive stock negative. Zero affected rows
// means the guard failed.
func (s *ProductService) DecrementStock(id uint, qty int) error {
	if qty < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	res := s.DB.Model(&models.Product{}).
		Where("id = ? AND is_active = ? AND stock >= ?", id, true, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInsufficientStock
	}
	s.invalidateCache()
	return nil
}
