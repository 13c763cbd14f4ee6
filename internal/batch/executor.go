// Package batch runs details fetches in fixed-size concurrent chunks so a
// scan never has more outstanding requests than the window width allows.
package batch

import (
	"context"
	"sync"

	"steamdeals/scanner/internal/domain"

	log "github.com/sirupsen/logrus"
)

// Fetcher is the retrying single-request fetcher. ok=false means the request
// exhausted its retries and contributes no result.
type Fetcher interface {
	Fetch(ctx context.Context, appID int) (*domain.AppDetails, bool)
}

// Item pairs a fetched details envelope with the app id that produced it.
type Item struct {
	AppID   int
	Details *domain.AppDetails
}

// Executor fans appdetails requests out chunk by chunk. Chunk n+1 starts
// only after every request of chunk n has either succeeded or exhausted its
// retries, which bounds simultaneous requests against the storefront's rate
// ceiling.
type Executor struct {
	fetcher Fetcher
}

func NewExecutor(fetcher Fetcher) *Executor {
	return &Executor{fetcher: fetcher}
}

// Run fetches details for appIDs with at most width concurrent requests.
// The returned items preserve the input order; exhausted requests are simply
// omitted, so the output may be shorter than the input. Nothing is retried
// at this level.
func (e *Executor) Run(ctx context.Context, appIDs []int, width int) []Item {
	if width < 1 {
		width = 1
	}

	results := make([]*domain.AppDetails, len(appIDs))

	for start := 0; start < len(appIDs); start += width {
		end := min(start+width, len(appIDs))

		wg := &sync.WaitGroup{}
		for i := start; i < end; i++ {
			wg.Add(1)

			go func(i int) {
				defer wg.Done()

				if details, ok := e.fetcher.Fetch(ctx, appIDs[i]); ok {
					results[i] = details
				}
			}(i)
		}
		wg.Wait()

		log.Debugf("Chunk [%d:%d) of %d requests complete", start, end, len(appIDs))
	}

	items := make([]Item, 0, len(appIDs))
	for i, details := range results {
		if details != nil {
			items = append(items, Item{AppID: appIDs[i], Details: details})
		}
	}
	return items
}
