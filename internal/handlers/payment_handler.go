package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"checkout-service/internal/services"
)

type PaymentHandler struct {
	Payments *services.PaymentService
}

func NewPaymentHandler(payments *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{Payments: payments}
}

// ProcessPayment handles POST /payments/process. A declined charge is a
// 200 with success=false; only system failures map to error statuses.
func (h *PaymentHandler) ProcessPayment(c *gin.Context) {
	var req services.ProcessPaymentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Payments.ProcessPayment(req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrOutOfStock):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product out of stock"})
		case errors.Is(err, services.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		case errors.Is(err, services.ErrGatewayUnavailable):
			// Gateway detail stays in the logs and on the FAILED row.
			c.JSON(http.StatusBadGateway, gin.H{"error": "Payment processing failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment processing failed"})
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetTransactionStatus handles GET /payments/status/:transactionNumber.
func (h *PaymentHandler) GetTransactionStatus(c *gin.Context) {
	transactionNumber := c.Param("transactionNumber")

	transaction, err := h.Payments.GetTransactionStatus(transactionNumber)
	if err != nil {
		if errors.Is(err, services.ErrTransactionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transaction"})
		return
	}

	c.JSON(http.StatusOK, transaction)
}
