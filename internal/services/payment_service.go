package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"

	"checkout-service/internal/models"
	"checkout-service/pkg/common"
)

var (
	ErrInvalidRequest      = errors.New("invalid payment request")
	ErrOutOfStock          = errors.New("product out of stock")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Task type shared with internal/worker (duplicated there to avoid an
// import cycle).
const TypeStockReconcile = "stock:reconcile"

// StockReconcilePayload is the queued alert for an approved charge whose
// stock decrement did not apply.
type StockReconcilePayload struct {
	AlertCode         string `json:"alertCode"`
	TransactionNumber string `json:"transactionNumber"`
	ProductId         uint   `json:"productId"`
	Quantity          int    `json:"quantity"`
	Reason            string `json:"reason"`
}

// PaymentService coordinates a single card payment attempt: stock check,
// PENDING record, tokenization, charge, then reconciliation of the local
// row and the catalog with the gateway's answer. There is no transactional
// wrapping across the two gateway calls; the ordering below is the
// consistency contract.
type PaymentService struct {
	DB          *gorm.DB
	Products    *ProductService
	Gateway     *GatewayService
	AsynqClient *asynq.Client

	// txnNumber yields candidate transaction numbers. Overridable in tests.
	txnNumber func() string
}

func NewPaymentService(db *gorm.DB, products *ProductService, gateway *GatewayService, asynqClient *asynq.Client) *PaymentService {
	return &PaymentService{
		DB:          db,
		Products:    products,
		Gateway:     gateway,
		AsynqClient: asynqClient,
		txnNumber:   common.GenerateTxnNumber,
	}
}

type ProcessPaymentDTO struct {
	ProductId       uint   `json:"productId" binding:"required"`
	CustomerEmail   string `json:"customerEmail" binding:"required,email"`
	CustomerName    string `json:"customerName" binding:"required,max=255"`
	CardNumber      string `json:"cardNumber" binding:"required,cardnumber"`
	CardExpiryMonth string `json:"cardExpiryMonth" binding:"required,expmonth"`
	CardExpiryYear  string `json:"cardExpiryYear" binding:"required,expyear"`
	CardCvv         string `json:"cardCvv" binding:"required,cvv"`
}

type PaymentResult struct {
	Success              bool   `json:"success"`
	TransactionNumber    string `json:"transactionNumber"`
	Message              string `json:"message"`
	GatewayTransactionId string `json:"gatewayTransactionId,omitempty"`
}

var (
	emailRe      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	cardNumberRe = regexp.MustCompile(`^\d{13,19}$`)
	expMonthRe   = regexp.MustCompile(`^(0[1-9]|1[0-2])$`)
	expYearRe    = regexp.MustCompile(`^\d{4}$`)
	cvvRe        = regexp.MustCompile(`^\d{3,4}$`)
)

// Validate checks field formats before any orchestration. A failure here
// means no transaction row is ever created.
func (dto ProcessPaymentDTO) Validate() error {
	if dto.ProductId == 0 {
		return fmt.Errorf("%w: productId is required", ErrInvalidRequest)
	}
	if !emailRe.MatchString(dto.CustomerEmail) {
		return fmt.Errorf("%w: customerEmail is not a valid email", ErrInvalidRequest)
	}
	if dto.CustomerName == "" || len(dto.CustomerName) > 255 {
		return fmt.Errorf("%w: customerName must be 1-255 characters", ErrInvalidRequest)
	}
	if !cardNumberRe.MatchString(dto.CardNumber) {
		return fmt.Errorf("%w: card number must be between 13 and 19 digits", ErrInvalidRequest)
	}
	if !expMonthRe.MatchString(dto.CardExpiryMonth) {
		return fmt.Errorf("%w: expiry month must be between 01 and 12", ErrInvalidRequest)
	}
	if !expYearRe.MatchString(dto.CardExpiryYear) {
		return fmt.Errorf("%w: expiry year must be a 4-digit year", ErrInvalidRequest)
	}
	if year, _ := strconv.Atoi(dto.CardExpiryYear); year < time.Now().Year() {
		return fmt.Errorf("%w: card is expired", ErrInvalidRequest)
	}
	if !cvvRe.MatchString(dto.CardCvv) {
		return fmt.Errorf("%w: CVV must be 3 or 4 digits", ErrInvalidRequest)
	}
	return nil
}

// ProcessPayment runs one payment attempt end to end. Returned errors map
// to the HTTP boundary; a completed-but-declined charge is a success=false
// result, not an error.
func (s *PaymentService) ProcessPayment(dto ProcessPaymentDTO) (*PaymentResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	product, err := s.Products.FindOne(dto.ProductId)
	if err != nil {
		return nil, err
	}

	if product.Stock < 1 {
		return nil, ErrOutOfStock
	}

	// The PENDING row is written before any gateway call so even attempts
	// that never reach the gateway leave an audit record. Amount is the
	// product price at this moment, never taken from the client.
	transaction, err := s.createPendingTransaction(dto, product)
	if err != nil {
		return nil, err
	}

	token, err := s.Gateway.TokenizeCard(CardData{
		Number:     dto.CardNumber,
		Cvc:        dto.CardCvv,
		ExpMonth:   dto.CardExpiryMonth,
		ExpYear:    dto.CardExpiryYear,
		CardHolder: dto.CustomerName,
	})
	if err != nil {
		s.markFailed(transaction, "Card tokenization failed")
		return nil, err
	}

	charge, err := s.Gateway.Charge(ChargeRequest{
		AmountInCents: AmountInCents(transaction.Amount),
		CustomerEmail: dto.CustomerEmail,
		Token:         token,
		Reference:     fmt.Sprintf("%d", product.ID),
	})
	if err != nil {
		s.markFailed(transaction, "Payment authorization failed")
		return nil, err
	}

	raw := string(charge.Raw)
	transaction.GatewayResponse = &raw
	if charge.ID != "" {
		transaction.GatewayTransactionId = &charge.ID
	}

	if charge.Status == GatewayStatusApproved {
		transaction.Status = models.StatusApproved
		if err := s.DB.Save(transaction).Error; err != nil {
			return nil, err
		}

		// Stock moves only after approval. A failed decrement here is an
		// operational inconsistency, not a customer-facing failure; the
		// charge stands and is never reversed.
		if err := s.Products.DecrementStock(product.ID, 1); err != nil {
			s.reportStockMismatch(transaction, product.ID, err)
		}

		return &PaymentResult{
			Success:              true,
			TransactionNumber:    transaction.TransactionNumber,
			Message:              "Payment successful",
			GatewayTransactionId: charge.ID,
		}, nil
	}

	message := charge.StatusMessage
	if message == "" {
		message = "Payment declined"
	}
	transaction.Status = models.StatusDeclined
	transaction.ErrorMessage = &message
	if err := s.DB.Save(transaction).Error; err != nil {
		return nil, err
	}

	return &PaymentResult{
		Success:              false,
		TransactionNumber:    transaction.TransactionNumber,
		Message:              message,
		GatewayTransactionId: charge.ID,
	}, nil
}

// createPendingTransaction persists the initial row, retrying with a fresh
// number on a unique-constraint hit. Collisions are infrastructure noise,
// never surfaced as a business error.
func (s *PaymentService) createPendingTransaction(dto ProcessPaymentDTO, product *models.Product) (*models.Transaction, error) {
	generate := s.txnNumber
	if generate == nil {
		generate = common.GenerateTxnNumber
	}

	for attempt := 0; attempt < 3; attempt++ {
		transaction := models.Transaction{
			TransactionNumber: generate(),
			Status:            models.StatusPending,
			Amount:            product.Price,
			CustomerEmail:     dto.CustomerEmail,
			CustomerName:      dto.CustomerName,
			CardNumber:        common.MaskCardNumber(dto.CardNumber),
			CardExpiryMonth:   dto.CardExpiryMonth,
			CardExpiryYear:    dto.CardExpiryYear,
			CardCvv:           "***",
			ProductId:         product.ID,
		}

		err := s.DB.Create(&transaction).Error
		if err == nil {
			return &transaction, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			log.Printf("Transaction number collision on %s, retrying", transaction.TransactionNumber)
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("could not allocate a unique transaction number")
}

// markFailed moves a row out of PENDING after a gateway communication
// failure. FAILED is terminal; the row keeps the correlation id for audit.
func (s *PaymentService) markFailed(transaction *models.Transaction, message string) {
	transaction.Status = models.StatusFailed
	transaction.ErrorMessage = &message
	if err := s.DB.Save(transaction).Error; err != nil {
		log.Printf("Failed to persist FAILED status for %s: %v", transaction.TransactionNumber, err)
	}
}

// reportStockMismatch records the inconsistency and hands it to the alert
// queue when one is configured.
func (s *PaymentService) reportStockMismatch(transaction *models.Transaction, productId uint, cause error) {
	alert := models.ReconciliationAlert{
		AlertCode:         uuid.NewString(),
		TransactionNumber: transaction.TransactionNumber,
		ProductId:         productId,
		Quantity:          1,
		Reason:            cause.Error(),
	}
	if err := s.DB.Create(&alert).Error; err != nil {
		log.Printf("Failed to persist reconciliation alert for %s: %v", transaction.TransactionNumber, err)
	}

	log.Printf("ALERT: approved transaction %s could not decrement stock for product %d: %v",
		transaction.TransactionNumber, productId, cause)

	if s.AsynqClient == nil {
		return
	}

	payload, err := json.Marshal(StockReconcilePayload{
		AlertCode:         alert.AlertCode,
		TransactionNumber: transaction.TransactionNumber,
		ProductId:         productId,
		Quantity:          1,
		Reason:            cause.Error(),
	})
	if err != nil {
		log.Printf("Failed to marshal reconcile payload: %v", err)
		return
	}
	if _, err := s.AsynqClient.Enqueue(asynq.NewTask(TypeStockReconcile, payload), asynq.Queue("critical")); err != nil {
		log.Printf("Failed to enqueue reconcile task for %s: %v", transaction.TransactionNumber, err)
	}
}

// GetTransactionStatus looks up a transaction by number with its product
// snapshot. Read only.
func (s *PaymentService) GetTransactionStatus(transactionNumber string) (*models.Transaction, error) {
	var transaction models.Transaction
	err := s.DB.Preload("Product").Where("transaction_number = ?", transactionNumber).First(&transaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}
	return &transaction, nil
}
