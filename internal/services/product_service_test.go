package services

import (
	"testing"

	"checkout-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFindOne(t *testing.T) {
	defer cleanup()

	svc := NewProductService(testDB, nil)
	product := createTestProduct(t, "MacBook Air M3", 6500000, 5)

	found, err := svc.FindOne(product.ID)
	assert.Nil(t, err)
	assert.Equal(t, "MacBook Air M3", found.Name)
	assert.Equal(t, 6500000.0, found.Price)
}

func TestFindOneInactive(t *testing.T) {
	defer cleanup()

	svc := NewProductService(testDB, nil)
	product := createTestProduct(t, "Retired Item", 1000, 5)

	assert.Nil(t, svc.Remove(product.ID))

	_, err := svc.FindOne(product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	// Soft delete: the row is still there for old transactions
	var raw models.Product
	assert.Nil(t, testDB.First(&raw, product.ID).Error)
	assert.False(t, raw.IsActive)
}

func TestCreateAndUpdate(t *testing.T) {
	defer cleanup()

	svc := NewProductService(testDB, nil)

	product, err := svc.Create(CreateProductDTO{
		Name:  "AirPods Pro 2",
		Price: 1200000,
		Stock: 15,
	})
	assert.Nil(t, err)
	assert.True(t, product.IsActive)

	newPrice := 1100000.0
	newStock := 20
	updated, err := svc.Update(product.ID, UpdateProductDTO{Price: &newPrice, Stock: &newStock})
	assert.Nil(t, err)

	var check models.Product
	testDB.First(&check, updated.ID)
	assert.Equal(t, 1100000.0, check.Price)
	assert.Equal(t, 20, check.Stock)

	badPrice := -5.0
	_, err = svc.Update(product.ID, UpdateProductDTO{Price: &badPrice})
	assert.NotNil(t, err)
}

func TestFindAllPagination(t *testing.T) {
	defer cleanup()

	svc := NewProductService(testDB, nil)
	for i := 0; i < 25; i++ {
		createTestProduct(t, "Item", 1000, 1)
	}
	retired := createTestProduct(t, "Hidden", 1000, 1)
	svc.Remove(retired.ID)

	result, err := svc.FindAll(1, 20)
	assert.Nil(t, err)
	assert.Equal(t, int64(25), result.Count)
	assert.Equal(t, 2, result.LastPage)
	assert.Len(t, result.Data.([]models.Product), 20)

	result, err = svc.FindAll(2, 20)
	assert.Nil(t, err)
	assert.Len(t, result.Data.([]models.Product), 5)
}

func TestDecrementStock(t *testing.T) {
	defer cleanup()

	svc := NewProductService(testDB, nil)
	product := createTestProduct(t, "Limited Item", 1000, 2)

	assert.Nil(t, svc.DecrementStock(product.ID, 1))
	assert.Nil(t, svc.DecrementStock(product.ID, 1))

	// Third decrement hits the conditional guard
	err := svc.DecrementStock(product.ID, 1)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var check models.Product
	testDB.First(&check, product.ID)
	assert.Equal(t, 0, check.Stock)
}

func TestDecrementStockTooMany(t *testing.T) {
	defer cleanup()

	svc := NewProductService(testDB, nil)
	product := createTestProduct(t, "Limited Item", 1000, 3)

	err := svc.DecrementStock(product.ID, 5)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	var check models.Product
	testDB.First(&check, product.ID)
	assert.Equal(t, 3, check.Stock)
}
