package entity

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// ChartRange is the history window of a chart in days.
type ChartRange int

const (
	ChartRange1D  ChartRange = 1
	ChartRange7D  ChartRange = 7
	ChartRange30D ChartRange = 30
	ChartRange90D ChartRange = 90
)

// DefaultChartRange is the range selected when an asset view opens.
const DefaultChartRange = ChartRange7D

// ChartRanges lists the selectable ranges in display order.
var ChartRanges = []ChartRange{ChartRange1D, ChartRange7D, ChartRange30D, ChartRange90D}

// Valid reports whether r is a selectable range.
func (r ChartRange) Valid() bool {
	for _, v := range ChartRanges {
		if v == r {
			return true
		}
	}
	return false
}

// Interval is the provider granularity for the range: hourly up to one day, daily otherwise.
func (r ChartRange) Interval() string {
	if r <= 1 {
		return "hourly"
	}
	return "daily"
}

// Label is the short display name, e.g. "24H" or "7D".
func (r ChartRange) Label() string {
	if r == ChartRange1D {
		return "24H"
	}
	return strconv.Itoa(int(r)) + "D"
}

// ParseChartRange converts raw input into a ChartRange. An empty string yields the default.
func ParseChartRange(raw string) (ChartRange, error) {
	if raw == "" {
		return DefaultChartRange, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: range %q is not a number", ErrInvalidArgument, raw)
	}
	r := ChartRange(days)
	if !r.Valid() {
		return 0, fmt.Errorf("%w: unsupported range %d days", ErrInvalidArgument, days)
	}
	return r, nil
}

// ChartPoint is one price sample. Timestamp is in milliseconds since epoch.
type ChartPoint struct {
	Timestamp int64           `json:"timestamp"`
	Price     decimal.Decimal `json:"price"`
}

// ChartSeries is the price history of one asset over one range, ascending by timestamp.
type ChartSeries struct {
	AssetID   string       `json:"assetId"`
	RangeDays ChartRange   `json:"rangeDays"`
	Points    []ChartPoint `json:"points"`
}
