package form

import (
	"context"

	"github.com/yuvrajm34/logout-evently-rickyv/internal/models"
	"golang.org/x/sync/errgroup"
)

// storeAll writes the event and, when present, its poster concurrently and
// waits for both. A failure of one does not cancel the other.
func storeAll(ctx context.Context, store Persistence, event *models.Event, poster Image) error {
	var g errgroup.Group
	g.Go(func() error {
		return store.StoreEvent(ctx, event)
	})
	if poster != nil {
		g.Go(func() error {
			return store.StorePoster(ctx, event.ID, poster)
		})
	}
	return g.Wait()
}
