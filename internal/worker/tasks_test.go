package worker

import (
	"context"
	"log"
	"os"
	"testing"

	"checkout-service/internal/consumers"
	"checkout-service/internal/models"
	"checkout-service/internal/services"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	var err error
	testDB, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to open test database: %v", err)
	}
	if err := testDB.AutoMigrate(&models.Product{}, &models.ReconciliationAlert{}); err != nil {
		log.Fatalf("Failed to migrate test database: %v", err)
	}
	os.Exit(m.Run())
}

func cleanup() {
	testDB.Exec("DELETE FROM products")
	testDB.Exec("DELETE FROM reconciliation_alerts")
}

func TestHandleStockReconcile(t *testing.T) {
	defer cleanup()

	product := models.Product{Name: "Restocked Item", Price: 1000, Stock: 1, IsActive: true}
	testDB.Create(&product)

	alert := models.ReconciliationAlert{
		AlertCode:         "alert-w1",
		TransactionNumber: "TXN-W1",
		ProductId:         product.ID,
		Quantity:          1,
		Reason:            "insufficient stock",
	}
	testDB.Create(&alert)

	task, err := NewStockReconcileTask(consumers.StockReconcileDTO{
		AlertCode:         "alert-w1",
		TransactionNumber: "TXN-W1",
		ProductId:         product.ID,
		Quantity:          1,
	})
	assert.Nil(t, err)
	assert.Equal(t, TypeStockReconcile, task.Type())

	worker := NewWorker(consumers.NewStockReconciler(testDB, services.NewProductService(testDB, nil)))
	assert.Nil(t, worker.HandleStockReconcile(context.Background(), task))

	var check models.Product
	testDB.First(&check, product.ID)
	assert.Equal(t, 0, check.Stock)

	var resolved models.ReconciliationAlert
	testDB.Where("alert_code = ?", "alert-w1").First(&resolved)
	assert.True(t, resolved.Resolved)
}

func TestHandleStockReconcileBadPayload(t *testing.T) {
	worker := NewWorker(consumers.NewStockReconciler(testDB, services.NewProductService(testDB, nil)))

	err := worker.HandleStockReconcile(context.Background(), asynq.NewTask(TypeStockReconcile, []byte("{not json")))
	assert.NotNil(t, err)

	// A malformed payload can never succeed on retry
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
