package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// BatchHandler scores many clients in one run. Clients are independent, so
// the pool exists purely for throughput; per-client work stays sequential.
type BatchHandler struct {
	Insights ClientInsightsHandler
	Log      *zap.SugaredLogger
}

type BatchResult struct {
	Processed int
	Failed    int
	Duration  time.Duration
}

// Run scores the given clients, or every known client when ids is empty.
func (h BatchHandler) Run(ctx context.Context, ids []string, concurrency int, withNarrative bool) (*BatchResult, error) {
	start := time.Now()

	if len(ids) == 0 {
		var err error
		ids, err = h.Insights.ClientRepository.ListClientIDs(ctx)
		if err != nil {
			return nil, err
		}
	}
	if concurrency < 1 {
		concurrency = 1
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		processed int
		failed    int
	)
	work := make(chan string)

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for clientID := range work {
				_, err := h.Insights.GetInsights(ctx, clientID, withNarrative)
				mu.Lock()
				if err != nil {
					failed++
					if !errors.Is(err, ErrClientNotFound) {
						h.Log.Errorw("failed to score client", "clientID", clientID, "error", err)
					}
				} else {
					processed++
				}
				mu.Unlock()
			}
		}()
	}

	for _, id := range ids {
		select {
		case <-ctx.Done():
			close(work)
			wg.Wait()
			return nil, ctx.Err()
		case work <- id:
		}
	}
	close(work)
	wg.Wait()

	return &BatchResult{
		Processed: processed,
		Failed:    failed,
		Duration:  time.Since(start),
	}, nil
}
