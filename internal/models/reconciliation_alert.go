package models

import (
	"time"
)

// ReconciliationAlert records an approved charge whose stock decrement did
// not apply. The charge is never reversed; the row stays unresolved until
// an operator (or the retry worker) clears it.
type ReconciliationAlert struct {
	ID                uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AlertCode         string    `gorm:"column:alert_code;size:64;not null;uniqueIndex" json:"alert_code"`
	TransactionNumber string    `gorm:"column:transaction_number;size:100;not null;index" json:"transaction_number"`
	ProductId         uint      `gorm:"column:product_id;not null" json:"product_id"`
	Quantity          int       `gorm:"column:quantity;not null;default:1" json:"quantity"`
	Reason            string    `gorm:"column:reason;type:text" json:"reason"`
	Resolved          bool      `gorm:"column:resolved;not null;default:false" json:"resolved"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ReconciliationAlert) TableName() string {
	return "reconciliation_alerts"
}
