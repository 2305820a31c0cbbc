package algo

import (
	"fmt"

	"github.com/estersassis/busfactor/schema"
)

// authorStat is the base extraction for one (group, author) pair.
type authorStat struct {
	author  string
	churn   int
	commits int
}

// groupStat holds the per-author stats of one group in first-seen author order.
type groupStat struct {
	key     string
	authors []authorStat
	index   map[string]int
}

func (g *groupStat) add(r schema.CommitRecord) {
	i, ok := g.index[r.Author]
	if !ok {
		i = len(g.authors)
		g.index[r.Author] = i
		g.authors = append(g.authors, authorStat{author: r.Author})
	}
	g.authors[i].churn += r.Churn()
	g.authors[i].commits++
}

// Aggregator computes EntityMetrics per group under one metric.
// It holds no per-call state, so one instance can serve concurrent Calculate calls.
type Aggregator struct {
	opts    schema.EngineOptions
	compute metricFunc
	grouper *Grouper
}

// NewAggregator validates opts and returns an Aggregator.
// Errors wrap schema.ErrInvalidConfiguration.
func NewAggregator(opts schema.EngineOptions) (*Aggregator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	compute, ok := metricStrategies[opts.Metric]
	if !ok {
		return nil, fmt.Errorf("%w: no strategy for metric '%s'", schema.ErrInvalidConfiguration, opts.Metric)
	}
	a := &Aggregator{opts: opts, compute: compute}
	if opts.GroupBy == schema.GroupByDirectory {
		a.grouper = NewGrouper(opts.Depth)
	}
	return a, nil
}

// Options returns the validated options of the aggregator.
func (a *Aggregator) Options() schema.EngineOptions {
	return a.opts
}

// Calculate groups the records, applies the metric and classifies every group.
// Groups appear in the order their first record was seen. Empty input yields an empty result.
func (a *Aggregator) Calculate(records []schema.CommitRecord) []schema.EntityMetrics {
	groups := a.extract(records)
	results := make([]schema.EntityMetrics, 0, len(groups))
	for _, g := range groups {
		row := a.compute(g)
		row.Group = g.key
		row.NAuthors = len(g.authors)
		row.RiskClass = Classify(row.NAuthors, row.ConcentrationShare, a.opts.Threshold)
		results = append(results, row)
	}
	return results
}

// extract builds the (group, author) base table, dropping records whose
// directory key does not have exactly the configured depth.
func (a *Aggregator) extract(records []schema.CommitRecord) []*groupStat {
	var order []*groupStat
	byKey := make(map[string]*groupStat)
	for _, r := range records {
		key := r.File
		if a.grouper != nil {
			var exact bool
			key, exact = a.grouper.Key(r.File)
			if !exact {
				continue
			}
		}
		g, ok := byKey[key]
		if !ok {
			g = &groupStat{key: key, index: make(map[string]int)}
			byKey[key] = g
			order = append(order, g)
		}
		g.add(r)
	}
	return order
}
