package services

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"checkout-service/internal/models"

	"gorm.io/gorm"
)

type TransactionArchiveService struct {
	DB *gorm.DB
}

func NewTransactionArchiveService(db *gorm.DB) *TransactionArchiveService {
	return &TransactionArchiveService{DB: db}
}

// ArchiveTransactions moves terminal transactions older than 4 months to
// the archive table. PENDING rows are left alone regardless of age; they
// are the audit trail of attempts that never resolved.
func (s *TransactionArchiveService) ArchiveTransactions() {
	log.Println("Starting transaction archive process...")

	cutoff := time.Now().AddDate(0, -4, 0)

	var oldTransactions []models.Transaction
	err := s.DB.
		Where("created_at < ? AND status IN (?)", cutoff,
			[]models.TransactionStatus{models.StatusApproved, models.StatusDeclined, models.StatusFailed}).
		Find(&oldTransactions).Error
	if err != nil {
		log.Printf("Error finding old transactions: %v", err)
		return
	}

	if len(oldTransactions) == 0 {
		log.Println("No transactions to archive")
		return
	}

	log.Printf("Found %d transactions to archive", len(oldTransactions))

	// Card columns are deliberately not carried into the archive.
	var archivedData []models.ArchivedTransaction
	for _, tx := range oldTransactions {
		archivedData = append(archivedData, models.ArchivedTransaction{
			TransactionNumber:    tx.TransactionNumber,
			Status:               tx.Status,
			Amount:               tx.Amount,
			CustomerEmail:        tx.CustomerEmail,
			CustomerName:         tx.CustomerName,
			GatewayTransactionId: tx.GatewayTransactionId,
			ErrorMessage:         tx.ErrorMessage,
			ProductId:            tx.ProductId,
			CreatedAt:            tx.CreatedAt,
			UpdatedAt:            tx.UpdatedAt,
		})
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&archivedData).Error; err != nil {
			return err
		}

		ids := make([]uint, len(oldTransactions))
		for i, t := range oldTransactions {
			ids[i] = t.ID
		}
		return tx.Delete(&models.Transaction{}, ids).Error
	})

	if err != nil {
		log.Printf("Error during transaction archiving: %v", err)
	} else {
		log.Printf("Archived and removed %d transactions.", len(oldTransactions))
	}
}

// StartScheduler initializes the cron job to run daily at midnight
func (s *TransactionArchiveService) StartScheduler() {
	c := cron.New()
	_, err := c.AddFunc("0 0 * * *", func() {
		log.Println("Running scheduled transaction archive task...")
		s.ArchiveTransactions()
	})
	if err != nil {
		log.Printf("Error scheduling archive task: %v", err)
		return
	}
	c.Start()
	log.Println("Transaction Archive Scheduler started (Daily at 00:00)")
}
