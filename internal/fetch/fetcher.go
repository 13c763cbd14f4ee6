package fetch

import (
	"context"
	"time"

	"steamdeals/scanner/internal/domain"

	log "github.com/sirupsen/logrus"
)

// DetailsClient performs one raw appdetails request with no retry of its
// own. A non-2xx status surfaces as an error, so transport failures and
// HTTP failures look the same to the retry loop.
type DetailsClient interface {
	AppDetails(ctx context.Context, appID int) (*domain.AppDetails, error)
}

// Fetcher wraps a DetailsClient with bounded retry and exponential backoff.
// It is the atomic unit of fault tolerance: callers never see an error, only
// a missing result after the retry budget is spent.
type Fetcher struct {
	client DetailsClient
	policy Policy
}

func NewFetcher(client DetailsClient, policy Policy) *Fetcher {
	if policy.MaxAttempts <= 0 {
		policy = DefaultPolicy()
	}
	return &Fetcher{client: client, policy: policy}
}

// Fetch performs the details request for one app. It returns ok=false when
// all attempts failed or the context was cancelled mid-backoff; callers
// treat a missing result as "skip", never as a batch failure.
func (f *Fetcher) Fetch(ctx context.Context, appID int) (*domain.AppDetails, bool) {
	for attempt := 1; ; attempt++ {
		details, err := f.client.AppDetails(ctx, appID)
		if err == nil {
			fetchAttemptsTotal.WithLabelValues("success").Inc()
			if attempt > 1 {
				log.Infof("✅ App %d fetched on attempt %d", appID, attempt)
			}
			return details, true
		}

		delay, retry := f.policy.Delay(attempt)
		if !retry {
			fetchAttemptsTotal.WithLabelValues("exhausted").Inc()
			fetchExhaustedTotal.Inc()
			log.Warnf("❌ App %d dropped after %d attempts: %v", appID, attempt, err)
			return nil, false
		}

		fetchAttemptsTotal.WithLabelValues("retry").Inc()
		fetchRetriesTotal.Inc()
		log.Debugf("🔄 App %d attempt %d failed, retrying in %v: %v", appID, attempt, delay, err)

		select {
		case <-ctx.Done():
			log.Warnf("App %d fetch cancelled during backoff: %v", appID, ctx.Err())
			return nil, false
		case <-time.After(delay):
		}
	}
}
