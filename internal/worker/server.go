package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"checkout-service/internal/consumers"

	"github.com/hibiken/asynq"
)

type Worker struct {
	Reconciler *consumers.StockReconciler
}

func NewWorker(reconciler *consumers.StockReconciler) *Worker {
	return &Worker{
		Reconciler: reconciler,
	}
}

func (w *Worker) HandleStockReconcile(ctx context.Context, t *asynq.Task) error {
	var p consumers.StockReconcileDTO
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	w.Reconciler.ProcessStockReconcile(p)
	return nil
}

func StartWorker(redisOpt asynq.RedisClientOpt, reconciler *consumers.StockReconciler) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	worker := NewWorker(reconciler)
	mux := asynq.NewServeMux()

	mux.HandleFunc(TypeStockReconcile, worker.HandleStockReconcile)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
