package domain

import "time"

// Filter describes the criteria a dashboard view applies to a dataset.
// All criteria are combined with logical AND.
//
// A nil membership slice means the caller did not restrict that dimension and
// the full universe of values applies. An empty non-nil slice is an explicit
// empty selection and matches zero rows. Zero From/To values mean the
// dataset's own min/max dates.
type Filter struct {
	// Year restricts rows to an exact calendar year; nil means all years.
	Year *int `json:"year,omitempty"`

	Categories []string `json:"categories"`
	Regions    []string `json:"regions"`
	Segments   []string `json:"segments"`

	// From and To bound the order date, inclusive on both ends.
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// FilterOptions enumerates the selectable values a dataset offers, used by
// the UI layer to populate its controls and by the service layer to resolve
// unrestricted filters to the full universe.
type FilterOptions struct {
	// Years is sorted newest first, matching the selector ordering.
	Years      []int    `json:"years"`
	Categories []string `json:"categories"`
	Regions    []string `json:"regions"`
	Segments   []string `json:"segments"`

	MinDate time.Time `json:"min_date"`
	MaxDate time.Time `json:"max_date"`
}
