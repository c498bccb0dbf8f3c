package models

import (
	"time"
)

// ArchivedTransaction holds terminal transactions moved out of the hot
// table by the nightly archive job. Card columns are not carried over.
type ArchivedTransaction struct {
	ID                   uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	TransactionNumber    string            `gorm:"column:transaction_number;size:100;not null;index" json:"transaction_number"`
	Status               TransactionStatus `gorm:"column:status;size:20;not null" json:"status"`
	Amount               float64           `gorm:"column:amount;type:decimal(10,2);not null" json:"amount"`
	CustomerEmail        string            `gorm:"column:customer_email;size:255" json:"customer_email"`
	CustomerName         string            `gorm:"column:customer_name;size:255" json:"customer_name"`
	GatewayTransactionId *string           `gorm:"column:gateway_transaction_id;size:100" json:"gateway_transaction_id"`
	ErrorMessage         *string           `gorm:"column:error_message;type:text" json:"error_message"`
	ProductId            uint              `gorm:"column:product_id;not null" json:"product_id"`
	CreatedAt            time.Time         `gorm:"column:created_at" json:"created_at"`
	UpdatedAt            time.Time         `gorm:"column:updated_at" json:"updated_at"`
	ArchivedAt           time.Time         `gorm:"column:archived_at;autoCreateTime" json:"archived_at"`
}

func (ArchivedTransaction) TableName() string {
	return "archived_transactions"
}
