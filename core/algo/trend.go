package algo

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"sort"
	"time"

	"github.com/estersassis/busfactor/schema"
	"golang.org/x/sync/errgroup"
)

// TrendWindower re-runs the aggregator over sliding time windows.
type TrendWindower struct {
	records []schema.CommitRecord
	byDate  []int // record indices in ascending date order
	agg     *Aggregator
	workers int
}

// NewTrendWindower validates the records and options for trend analysis.
// Every record must carry a date; otherwise it fails with schema.ErrMissingRequiredField.
// A non-positive workers value uses GOMAXPROCS.
func NewTrendWindower(records []schema.CommitRecord, opts schema.EngineOptions, workers int) (*TrendWindower, error) {
	for i, r := range records {
		if r.Date.IsZero() {
			return nil, fmt.Errorf("%w: record %d (%s in %s) has no date; trend analysis needs dated records",
				schema.ErrMissingRequiredField, i, r.File, r.CommitHash)
		}
	}
	agg, err := NewAggregator(opts)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	byDate := make([]int, len(records))
	for i := range byDate {
		byDate[i] = i
	}
	sort.SliceStable(byDate, func(i, j int) bool {
		return records[byDate[i]].Date.Before(records[byDate[j]].Date)
	})

	return &TrendWindower{records: records, byDate: byDate, agg: agg, workers: workers}, nil
}

// Analyze emits one TrendPoint per step from start to end inclusive. Each point covers
// the records dated within [current-windowDays, current]; windows without records are skipped.
// Points are ordered by window end. An end before start yields an empty series.
func (tw *TrendWindower) Analyze(ctx context.Context, start, end time.Time, windowDays, stepDays int) ([]schema.TrendPoint, error) {
	if err := schema.ValidateTrendWindow(windowDays, stepDays); err != nil {
		return nil, err
	}

	var steps []time.Time
	for current := start; !current.After(end); current = current.Add(days(stepDays)) {
		steps = append(steps, current)
	}

	slots := make([]*schema.TrendPoint, len(steps))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(tw.workers)
	for i, current := range steps {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			slots[i] = tw.point(current, windowDays)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	points := make([]schema.TrendPoint, 0, len(slots))
	for _, p := range slots {
		if p != nil {
			points = append(points, *p)
		}
	}
	return points, nil
}

// days converts a day count to a fixed 24h duration, independent of DST.
func days(n int) time.Duration {
	return time.Duration(n) * 24 * time.Hour
}

// point aggregates one window, or returns nil when it holds no records.
func (tw *TrendWindower) point(current time.Time, windowDays int) *schema.TrendPoint {
	selection := tw.window(current.Add(-days(windowDays)), current)
	if len(selection) == 0 {
		return nil
	}
	results := tw.agg.Calculate(selection)
	critical := 0
	for _, r := range results {
		if r.RiskClass == schema.Critical {
			critical++
		}
	}
	var pct float64
	if len(results) > 0 {
		pct = 100 * float64(critical) / float64(len(results))
	}
	return &schema.TrendPoint{
		Date:             current,
		TotalEntities:    len(results),
		CriticalEntities: critical,
		RiskyPercentage:  pct,
	}
}

// window selects records dated in [from, to], kept in input order so
// dominant-author tie-breaks match a snapshot run over the same records.
func (tw *TrendWindower) window(from, to time.Time) []schema.CommitRecord {
	lo := sort.Search(len(tw.byDate), func(i int) bool {
		return !tw.records[tw.byDate[i]].Date.Before(from)
	})
	hi := sort.Search(len(tw.byDate), func(i int) bool {
		return tw.records[tw.byDate[i]].Date.After(to)
	})
	if lo >= hi {
		return nil
	}
	idx := slices.Clone(tw.byDate[lo:hi])
	slices.Sort(idx)
	selection := make([]schema.CommitRecord, len(idx))
	for i, j := range idx {
		selection[i] = tw.records[j]
	}
	return selection
}

// DateBounds returns the earliest and latest record dates, ignoring undated records.
// ok is false when no record has a date.
func DateBounds(records []schema.CommitRecord) (earliest, latest time.Time, ok bool) {
	for _, r := range records {
		if r.Date.IsZero() {
			continue
		}
		if !ok || r.Date.Before(earliest) {
			earliest = r.Date
		}
		if !ok || r.Date.After(latest) {
			latest = r.Date
		}
		ok = true
	}
	return earliest, latest, ok
}
