package models

import (
	"time"
)

type TransactionStatus string

const (
	StatusPending  TransactionStatus = "PENDING"
	StatusApproved TransactionStatus = "APPROVED"
	StatusDeclined TransactionStatus = "DECLINED"
	StatusFailed   TransactionStatus = "FAILED"
)

// IsTerminal reports whether no further automatic transition may occur.
func (s TransactionStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusDeclined || s == StatusFailed
}

type Transaction struct {
	ID                   uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	TransactionNumber    string            `gorm:"column:transaction_number;size:100;not null;uniqueIndex" json:"transaction_number"`
	Status               TransactionStatus `gorm:"column:status;size:20;not null;default:PENDING" json:"status"`
	Amount               float64           `gorm:"column:amount;type:decimal(10,2);not null" json:"amount"`
	CustomerEmail        string            `gorm:"column:customer_email;size:255;not null" json:"customer_email"`
	CustomerName         string            `gorm:"column:customer_name;size:255;not null" json:"customer_name"`
	CardNumber           string            `gorm:"column:card_number;size:19" json:"card_number"`
	CardExpiryMonth      string            `gorm:"column:card_expiry_month;size:4" json:"card_expiry_month"`
	CardExpiryYear       string            `gorm:"column:card_expiry_year;size:4" json:"card_expiry_year"`
	CardCvv              string            `gorm:"column:card_cvv;size:4" json:"-"`
	GatewayTransactionId *string           `gorm:"column:gateway_transaction_id;size:100" json:"gateway_transaction_id"`
	GatewayResponse      *string           `gorm:"column:gateway_response;type:text" json:"gateway_response,omitempty"`
	ErrorMessage         *string           `gorm:"column:error_message;type:text" json:"error_message"`
	ProductId            uint              `gorm:"column:product_id;not null;index" json:"product_id"`
	Product              *Product          `gorm:"foreignKey:ProductId" json:"product,omitempty"`
	CreatedAt            time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}
