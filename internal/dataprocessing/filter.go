package dataprocessing

import (
	"sort"
	"time"

	"salesdash/pkg/contracts/domain"
)

// ApplyFilter returns the transactions satisfying every criterion of the
// filter, preserving the input order. The input slice is never mutated.
//
// Membership sets are taken literally: an empty (or nil) set for any of
// category, region, or segment matches zero rows. Callers that mean "no
// restriction" must resolve the set to the full universe first, which is
// what ResolveFilter does. The date range is always applied, inclusive on
// both ends.
func ApplyFilter(transactions []domain.Transaction, f domain.Filter) []domain.Transaction {
	categories := toSet(f.Categories)
	regions := toSet(f.Regions)
	segments := toSet(f.Segments)

	out := make([]domain.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if f.Year != nil && t.Year != *f.Year {
			continue
		}
		if !categories[t.Category] || !regions[t.Region] || !segments[t.Segment] {
			continue
		}
		if t.OrderDate.Before(f.From) || t.OrderDate.After(f.To) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// ResolveFilter fills in the parts of a filter the caller left open: nil
// membership slices become the dataset's full universe for that dimension,
// and zero From/To become the dataset's own min/max dates. Explicitly empty
// slices are kept empty, so an empty selection still matches zero rows.
func ResolveFilter(ds *domain.Dataset, f domain.Filter) domain.Filter {
	opts := Options(ds)

	if f.Categories == nil {
		f.Categories = opts.Categories
	}
	if f.Regions == nil {
		f.Regions = opts.Regions
	}
	if f.Segments == nil {
		f.Segments = opts.Segments
	}
	if f.From.IsZero() {
		f.From = opts.MinDate
	}
	if f.To.IsZero() {
		f.To = opts.MaxDate
	}
	return f
}

// Options computes the selectable filter values a dataset offers: distinct
// years (newest first), sorted distinct categories, regions, and segments,
// and the min/max order dates.
func Options(ds *domain.Dataset) domain.FilterOptions {
	years := make(map[int]struct{})
	categories := make(map[string]struct{})
	regions := make(map[string]struct{})
	segments := make(map[string]struct{})

	var minDate, maxDate time.Time
	for _, t := range ds.Transactions {
		years[t.Year] = struct{}{}
		categories[t.Category] = struct{}{}
		regions[t.Region] = struct{}{}
		segments[t.Segment] = struct{}{}

		if minDate.IsZero() || t.OrderDate.Before(minDate) {
			minDate = t.OrderDate
		}
		if maxDate.IsZero() || t.OrderDate.After(maxDate) {
			maxDate = t.OrderDate
		}
	}

	opts := domain.FilterOptions{
		Years:      sortedYears(years),
		Categories: sortedKeys(categories),
		Regions:    sortedKeys(regions),
		Segments:   sortedKeys(segments),
		MinDate:    minDate,
		MaxDate:    maxDate,
	}
	return opts
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func sortedYears(years map[int]struct{}) []int {
	out := make([]int, 0, len(years))
	for y := range years {
		out = append(out, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

func sortedKeys(values map[string]struct{}) []string {
	out := make([]string, 0, len(values))
	for v := range values {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
