package batch

import (
	"context"
	"sync"
	"testing"

	"steamdeals/scanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trackingFetcher records concurrency and drops ids listed in failing.
type trackingFetcher struct {
	mu            sync.Mutex
	inFlight      int
	maxInFlight   int
	failing       map[int]bool
	fetchedOrder  []int
	chunkBoundary []int // inFlight observed at each fetch start
}

func (f *trackingFetcher) Fetch(_ context.Context, appID int) (*domain.AppDetails, bool) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.chunkBoundary = append(f.chunkBoundary, f.inFlight)
	f.fetchedOrder = append(f.fetchedOrder, appID)
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if f.failing[appID] {
		return nil, false
	}
	return &domain.AppDetails{Success: true, Data: &domain.AppData{Name: "app"}}, true
}

func TestRunPreservesInputOrder(t *testing.T) {
	fetcher := &trackingFetcher{}
	executor := NewExecutor(fetcher)

	appIDs := []int{10, 20, 30, 40, 50, 60, 70}
	items := executor.Run(context.Background(), appIDs, 3)

	require.Len(t, items, len(appIDs))
	for i, item := range items {
		assert.Equal(t, appIDs[i], item.AppID)
	}
}

func TestRunOmitsExhaustedRequests(t *testing.T) {
	fetcher := &trackingFetcher{failing: map[int]bool{20: true, 50: true}}
	executor := NewExecutor(fetcher)

	items := executor.Run(context.Background(), []int{10, 20, 30, 40, 50}, 2)

	got := make([]int, 0, len(items))
	for _, item := range items {
		got = append(got, item.AppID)
	}
	// Output is a subsequence of the input with the same relative order.
	assert.Equal(t, []int{10, 30, 40}, got)
}

func TestRunBoundsConcurrency(t *testing.T) {
	fetcher := &trackingFetcher{}
	executor := NewExecutor(fetcher)

	appIDs := make([]int, 25)
	for i := range appIDs {
		appIDs[i] = i + 1
	}

	executor.Run(context.Background(), appIDs, 5)

	assert.LessOrEqual(t, fetcher.maxInFlight, 5)
}

func TestRunWidthOfOneIsSequential(t *testing.T) {
	fetcher := &trackingFetcher{}
	executor := NewExecutor(fetcher)

	appIDs := []int{1, 2, 3, 4}
	items := executor.Run(context.Background(), appIDs, 1)

	require.Len(t, items, 4)
	assert.Equal(t, 1, fetcher.maxInFlight)
	// With width 1, fetch start order is the input order.
	assert.Equal(t, appIDs, fetcher.fetchedOrder)
}

func TestRunHandlesEmptyInput(t *testing.T) {
	executor := NewExecutor(&trackingFetcher{})

	items := executor.Run(context.Background(), nil, 4)

	assert.Empty(t, items)
}

func TestRunNormalizesInvalidWidth(t *testing.T) {
	fetcher := &trackingFetcher{}
	executor := NewExecutor(fetcher)

	items := executor.Run(context.Background(), []int{1, 2, 3}, 0)

	require.Len(t, items, 3)
	assert.Equal(t, 1, fetcher.maxInFlight)
}
