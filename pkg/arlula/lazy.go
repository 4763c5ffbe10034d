package arlula

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Loader fetches sub-resources that list and detail endpoints do not always
// embed. The orders client implements it.
type Loader interface {
	OrderCampaigns(ctx context.Context, orderID string) ([]*Campaign, error)
	OrderDatasets(ctx context.Context, orderID string) ([]*Dataset, error)
	CampaignDatasets(ctx context.Context, campaignID string) ([]*Dataset, error)
	DatasetResources(ctx context.Context, datasetID string) ([]*Resource, error)
}

// lazyList caches a sub-resource list. It moves from unfetched to resolved
// at most once; concurrent first callers share a single in-flight fetch, and a
// failed fetch leaves the list unfetched. A nil list is never resolved.
type lazyList[T any] struct {
	mutex    sync.RWMutex
	resolved bool
	items    []T
	inflight singleflight.Group
}

// newLazyList starts resolved when the server already embedded items.
func newLazyList[T any](items []T) *lazyList[T] {
	return &lazyList[T]{
		items:    items,
		resolved: len(items) > 0,
	}
}

func (l *lazyList[T]) cached() ([]T, bool) {
	if l == nil {
		return nil, false
	}

	l.mutex.RLock()
	defer l.mutex.RUnlock()

	return l.items, l.resolved
}

// get returns the cached list or performs the fetch. The shared fetch ignores
// caller cancellation and keeps the context values of the caller that started
// it; each caller waits only as long as its own ctx allows.
func (l *lazyList[T]) get(ctx context.Context, fetch func(context.Context) ([]T, error)) ([]T, error) {
	if l == nil {
		return nil, ErrNoLoader
	}

	if items, ok := l.cached(); ok {
		return items, nil
	}

	shared := context.WithoutCancel(ctx)

	results := l.inflight.DoChan("fetch", func() (interface{}, error) {
		if items, ok := l.cached(); ok {
			return items, nil
		}

		items, err := fetch(shared)
		if err != nil {
			return nil, err
		}

		if items == nil {
			items = []T{}
		}

		l.mutex.Lock()
		l.items = items
		l.resolved = true
		l.mutex.Unlock()

		return items, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-results:
		if result.Err != nil {
			return nil, result.Err
		}

		items, _ := result.Val.([]T)

		return items, nil
	}
}
