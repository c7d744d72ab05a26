package media

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Target identifies a remote asset to delete
type Target struct {
	PublicID string
	Kind     Kind
}

// BulkResult counts the outcome of a best-effort fan-out
type BulkResult struct {
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// BulkDelete deletes every target with at most limit calls in flight.
// Individual failures are logged and counted, never returned. Targets with
// an empty public id are skipped.
func BulkDelete(ctx context.Context, store Storage, targets []Target, limit int, logger *zap.Logger) BulkResult {
	var (
		mu     sync.Mutex
		result BulkResult
	)

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for _, t := range targets {
		if t.PublicID == "" {
			continue
		}
		t := t
		g.Go(func() error {
			err := store.Delete(gctx, t.PublicID, t.Kind)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				logger.Warn("Remote asset deletion failed",
					zap.String("public_id", t.PublicID),
					zap.String("kind", string(t.Kind)),
					zap.Error(err),
				)
				result.Failed++
				result.Errors = append(result.Errors, t.PublicID+": "+err.Error())
				return nil
			}
			result.Succeeded++
			return nil
		})
	}

	_ = g.Wait()
	return result
}
