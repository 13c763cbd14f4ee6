// Package scanner drives the discount discovery loop: pull a window of
// catalog entries at the current cursor, fetch details in one bounded
// concurrency burst, keep the discounted ones, advance, and stop once the
// quota is met or the catalog runs out.
package scanner

import (
	"context"
	"sync"
	"time"

	"steamdeals/scanner/internal/batch"
	"steamdeals/scanner/internal/cursor"
	"steamdeals/scanner/internal/domain"
	"steamdeals/scanner/internal/state"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
)

var (
	scansTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scanner_scans_total",
		Help: "Total completed scan passes",
	})

	scanDealsFound = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scanner_deals_found",
		Help:    "Deals found per scan pass",
		Buckets: []float64{0, 1, 2, 5, 10, 20},
	})
)

// Catalog is the ordered, read-only app catalog.
type Catalog interface {
	Count(ctx context.Context) (int, error)
	Slice(ctx context.Context, offset, count int) ([]domain.App, error)
}

// Executor fetches details for a window of app ids with bounded concurrency.
type Executor interface {
	Run(ctx context.Context, appIDs []int, width int) []batch.Item
}

// Sink receives the final deal list for persistence.
type Sink interface {
	SaveDeals(ctx context.Context, deals []domain.Deal, capturedAt time.Time) error
}

// Options tunes a scan pass. Quota gates how far the scan searches; Limit
// caps how many deals a page returns. They are close but distinct.
type Options struct {
	WindowSize int
	Quota      int
	Limit      int
}

func DefaultOptions() Options {
	return Options{
		WindowSize: 20,
		Quota:      10,
		Limit:      9,
	}
}

// Result is one completed scan pass for a requested page.
type Result struct {
	Page       int           `json:"page"`
	Deals      []domain.Deal `json:"deals"`
	CapturedAt time.Time     `json:"captured_at"`
}

// Service orchestrates scan passes. A mutex serializes passes: the global
// offset and the page cursor table assume a single scan in flight.
type Service struct {
	mu sync.Mutex

	catalog  Catalog
	executor Executor
	sink     Sink
	pages    *cursor.Table
	progress state.Manager
	opts     Options
}

func NewService(catalog Catalog, executor Executor, sink Sink, pages *cursor.Table, progress state.Manager, opts Options) *Service {
	if opts.WindowSize < 1 {
		opts = DefaultOptions()
	}
	return &Service{
		catalog:  catalog,
		executor: executor,
		sink:     sink,
		pages:    pages,
		progress: progress,
		opts:     opts,
	}
}

// Scan walks the catalog for the requested page and returns at most
// Options.Limit discounted apps. Fetch failures and ineligible apps are
// dropped silently; an empty or unavailable catalog yields an empty result,
// never an error.
func (s *Service) Scan(ctx context.Context, page int) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total, err := s.catalog.Count(ctx)
	if err != nil {
		log.Errorf("❌ Catalog unavailable, returning empty result: %v", err)
		return &Result{Page: page, Deals: []domain.Deal{}, CapturedAt: time.Now().UTC()}, nil
	}
	if total == 0 {
		log.Warn("Catalog is empty, nothing to scan")
		return &Result{Page: page, Deals: []domain.Deal{}, CapturedAt: time.Now().UTC()}, nil
	}

	start := s.resolveStart(ctx, page)
	idx := start
	deals := make([]domain.Deal, 0, s.opts.Quota)

	log.Infof("🔍 Scan pass for page %d starting at offset %d of %d", page, start, total)

	for idx < total && len(deals) < s.opts.Quota {
		window, err := s.catalog.Slice(ctx, idx, s.opts.WindowSize)
		if err != nil {
			log.Errorf("❌ Failed to read catalog window at %d: %v", idx, err)
			break
		}
		if len(window) == 0 {
			break
		}

		appIDs := make([]int, 0, len(window))
		for _, app := range window {
			appIDs = append(appIDs, app.ID)
		}

		items := s.executor.Run(ctx, appIDs, s.opts.WindowSize)
		for _, item := range items {
			if deal, ok := domain.DealFromDetails(item.AppID, item.Details); ok {
				deals = append(deals, deal)
			}
		}

		idx += len(window)
	}

	if err := s.progress.AdvanceScanOffset(ctx, idx); err != nil {
		log.Errorf("❌ Failed to commit scan offset %d: %v", idx, err)
	}
	s.pages.Record(page, start)

	if len(deals) > s.opts.Limit {
		deals = deals[:s.opts.Limit]
	}

	result := &Result{
		Page:       page,
		Deals:      deals,
		CapturedAt: time.Now().UTC(),
	}

	if err := s.sink.SaveDeals(ctx, result.Deals, result.CapturedAt); err != nil {
		log.Errorf("❌ Failed to persist %d deals: %v", len(result.Deals), err)
	}

	scansTotal.Inc()
	scanDealsFound.Observe(float64(len(result.Deals)))
	log.Infof("✅ Scan pass for page %d done: %d deals, offset %d → %d", page, len(result.Deals), start, idx)

	return result, nil
}

// resolveStart prefers the page's remembered start offset, falling back to
// the committed global offset for pages never seen before.
func (s *Service) resolveStart(ctx context.Context, page int) int {
	if offset, ok := s.pages.Lookup(page); ok {
		return offset
	}

	offset, err := s.progress.ScanOffset(ctx)
	if err != nil {
		log.Warnf("Failed to load scan offset, starting from 0: %v", err)
		return 0
	}
	return offset
}
