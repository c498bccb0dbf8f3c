package consumers

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"checkout-service/internal/models"
	"checkout-service/internal/services"
)

// StockReconcileDTO mirrors services.StockReconcilePayload; duplicated here
// to avoid an import cycle through the worker.
type StockReconcileDTO struct {
	AlertCode         string `json:"alertCode"`
	TransactionNumber string `json:"transactionNumber"`
	ProductId         uint   `json:"productId"`
	Quantity          int    `json:"quantity"`
	Reason            string `json:"reason"`
}

// StockReconciler retries stock decrements that failed after an approved
// charge. The charge itself is never touched.
type StockReconciler struct {
	DB       *gorm.DB
	Products *services.ProductService
}

func NewStockReconciler(db *gorm.DB, products *services.ProductService) *StockReconciler {
	return &StockReconciler{DB: db, Products: products}
}

// ProcessStockReconcile attempts the conditional decrement once more. On
// success the alert is marked resolved; otherwise it stays open for an
// operator and the failure is logged loudly.
func (p *StockReconciler) ProcessStockReconcile(dto StockReconcileDTO) {
	qty := dto.Quantity
	if qty < 1 {
		qty = 1
	}

	err := p.Products.DecrementStock(dto.ProductId, qty)
	if err == nil {
		res := p.DB.Model(&models.ReconciliationAlert{}).
			Where("alert_code = ?", dto.AlertCode).
			Update("resolved", true)
		if res.Error != nil {
			log.Printf("Reconciled stock for %s but could not resolve alert %s: %v",
				dto.TransactionNumber, dto.AlertCode, res.Error)
			return
		}
		log.Printf("Reconciled stock for transaction %s (alert %s)", dto.TransactionNumber, dto.AlertCode)
		return
	}

	if errors.Is(err, services.ErrInsufficientStock) {
		log.Printf("ALERT: stock for product %d still cannot cover approved transaction %s (alert %s); manual action required",
			dto.ProductId, dto.TransactionNumber, dto.AlertCode)
		return
	}

	log.Printf("Stock reconcile for %s failed: %v", dto.TransactionNumber, err)
}
