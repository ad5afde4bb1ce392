package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pranithapadala/FinWell/internal/cache"
	"github.com/pranithapadala/FinWell/internal/core"
)

// DefaultTrendMonths is the width of the trend window ending at the current
// month.
const DefaultTrendMonths = 6

// ErrSourceUnavailable marks a failed month fetch so handlers can translate it
// to a 502 instead of a generic 500.
var ErrSourceUnavailable = errors.New("transaction source unavailable")

// TransactionSource lists the transactions of one calendar month.
type TransactionSource interface {
	ListMonth(ctx context.Context, month core.MonthKey) ([]core.Transaction, error)
}

// CategoryBreakdown pairs the expense buckets of a month with their assigned
// chart colors, index-aligned.
type CategoryBreakdown struct {
	Categories []core.CategoryAmount
	Colors     []string
}

// DashboardService computes the dashboard aggregates over a transaction
// source, keeping recently fetched months in an LRU cache so switching between
// summary, breakdown and trend does not refetch the same month.
type DashboardService struct {
	source      TransactionSource
	months      *cache.LRUCache[[]core.Transaction]
	trendMonths int
}

func NewDashboardService(source TransactionSource, trendMonths, cacheSize int, cacheTTL time.Duration) *DashboardService {
	if trendMonths <= 0 {
		trendMonths = DefaultTrendMonths
	}
	return &DashboardService{
		source:      source,
		months:      cache.NewLRUCache[[]core.Transaction](cacheSize, cacheTTL),
		trendMonths: trendMonths,
	}
}

// Transactions returns one month's records, served from cache when hot.
func (s *DashboardService) Transactions(ctx context.Context, month core.MonthKey) ([]core.Transaction, error) {
	if txs, ok := s.months.Get(string(month)); ok {
		return txs, nil
	}
	txs, err := s.source.ListMonth(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("fetch month %s: %w", month, errors.Join(ErrSourceUnavailable, err))
	}
	s.months.Set(string(month), txs)
	return txs, nil
}

// Summary computes the KPI figures for one month.
func (s *DashboardService) Summary(ctx context.Context, month core.MonthKey) (core.MonthSummary, error) {
	txs, err := s.Transactions(ctx, month)
	if err != nil {
		return core.MonthSummary{}, err
	}
	return core.Summarize(txs), nil
}

// Breakdown computes the per-category expense buckets and their colors for one
// month.
func (s *DashboardService) Breakdown(ctx context.Context, month core.MonthKey) (CategoryBreakdown, error) {
	txs, err := s.Transactions(ctx, month)
	if err != nil {
		return CategoryBreakdown{}, err
	}
	categories := core.BreakDown(txs)
	labels := make([]string, len(categories))
	for i, c := range categories {
		labels[i] = c.Name
	}
	return CategoryBreakdown{Categories: categories, Colors: core.AssignColors(labels)}, nil
}

// Trend fetches the window of months ending at end concurrently and reduces
// them into slot-aligned series. A month whose fetch fails contributes zero
// totals but keeps its slot; only context cancellation fails the whole call.
func (s *DashboardService) Trend(ctx context.Context, end core.MonthKey) (core.Trend, error) {
	window := core.Window(end, s.trendMonths)
	byMonth := make([][]core.Transaction, len(window))

	g, gctx := errgroup.WithContext(ctx)
	for i, month := range window {
		g.Go(func() error {
			txs, err := s.Transactions(gctx, month)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				slog.WarnContext(gctx, "Month fetch failed, charting zeros", "month", month, "error", err)
				return nil
			}
			byMonth[i] = txs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return core.Trend{}, err
	}
	return core.BuildTrend(window, byMonth), nil
}

// Invalidate drops one month from the cache. Called after a write that changes
// the month's transactions.
func (s *DashboardService) Invalidate(month core.MonthKey) {
	s.months.Delete(string(month))
}
