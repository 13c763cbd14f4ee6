package fetch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"steamdeals/scanner/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyClient fails the first failures attempts, then succeeds.
type flakyClient struct {
	mu       sync.Mutex
	failures int
	attempts int
	details  *domain.AppDetails
}

func (c *flakyClient) AppDetails(_ context.Context, _ int) (*domain.AppDetails, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.attempts++
	if c.attempts <= c.failures {
		return nil, errors.New("storefront hiccup")
	}
	return c.details, nil
}

func fastPolicy() Policy {
	return Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, Multiplier: 2.0}
}

func TestFetchFirstAttemptSucceeds(t *testing.T) {
	client := &flakyClient{details: &domain.AppDetails{Success: true}}
	fetcher := NewFetcher(client, fastPolicy())

	details, ok := fetcher.Fetch(context.Background(), 440)

	require.True(t, ok)
	assert.True(t, details.Success)
	assert.Equal(t, 1, client.attempts)
}

func TestFetchRecoversOnThirdAttempt(t *testing.T) {
	client := &flakyClient{failures: 2, details: &domain.AppDetails{Success: true}}
	fetcher := NewFetcher(client, fastPolicy())

	details, ok := fetcher.Fetch(context.Background(), 440)

	require.True(t, ok)
	assert.True(t, details.Success)
	assert.Equal(t, 3, client.attempts)
}

func TestFetchExhaustsAfterThreeAttempts(t *testing.T) {
	client := &flakyClient{failures: 10}
	fetcher := NewFetcher(client, fastPolicy())

	details, ok := fetcher.Fetch(context.Background(), 440)

	assert.False(t, ok)
	assert.Nil(t, details)
	assert.Equal(t, 3, client.attempts)
}

func TestFetchStopsOnCancelledContext(t *testing.T) {
	client := &flakyClient{failures: 10}
	fetcher := NewFetcher(client, Policy{MaxAttempts: 3, BaseDelay: time.Minute, Multiplier: 2.0})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, ok := fetcher.Fetch(ctx, 440)

	assert.False(t, ok)
	assert.Less(t, time.Since(start), time.Second, "cancelled fetch must not sit out the backoff")
	assert.Equal(t, 1, client.attempts)
}

func TestNewFetcherRejectsEmptyPolicy(t *testing.T) {
	fetcher := NewFetcher(&flakyClient{}, Policy{})
	assert.Equal(t, DefaultPolicy(), fetcher.policy)
}
