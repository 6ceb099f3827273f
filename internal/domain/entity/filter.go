package entity

import "github.com/shopspring/decimal"

// FilterSpec describes what the market table shows.
// SortKey is sent to the provider; the other fields filter the fetched page.
// MinChange > MaxChange is allowed and simply matches nothing.
type FilterSpec struct {
	Search    string           `json:"search"`
	SortKey   SortKey          `json:"sortBy"`
	MinChange *decimal.Decimal `json:"minChange,omitempty"`
	MaxChange *decimal.Decimal `json:"maxChange,omitempty"`
}

// DefaultFilterSpec is the spec of a freshly opened or cleared market table.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{SortKey: DefaultSortKey}
}

// HasActiveFilters reports whether any client-side filter is set.
func (f FilterSpec) HasActiveFilters() bool {
	return f.Search != "" || f.MinChange != nil || f.MaxChange != nil
}

// BoundsUpdate is a partial change of the 24h-change bounds.
// Clear drops both bounds first; a non-nil Min or Max then replaces its side.
type BoundsUpdate struct {
	Min   *decimal.Decimal
	Max   *decimal.Decimal
	Clear bool
}

// Empty reports whether the update changes nothing.
func (u BoundsUpdate) Empty() bool {
	return !u.Clear && u.Min == nil && u.Max == nil
}
