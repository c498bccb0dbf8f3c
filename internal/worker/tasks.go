package worker

import (
	"encoding/json"

	"checkout-service/internal/consumers"

	"github.com/hibiken/asynq"
)

// Task Types
const (
	TypeStockReconcile = "stock:reconcile"
)

func NewStockReconcileTask(payload consumers.StockReconcileDTO) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeStockReconcile, data), nil
}
