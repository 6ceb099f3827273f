package service

import (
	"strings"

	"coinboard/internal/domain/entity"
)

// ApplyFilter keeps the entries matching spec, in their original order.
// Sorting is not done here: the sort key only selects which page the provider returns,
// so the filter sees the current page and nothing else.
func ApplyFilter(entries []entity.MarketEntry, spec entity.FilterSpec) []entity.MarketEntry {
	search := strings.ToLower(spec.Search)
	filtered := make([]entity.MarketEntry, 0, len(entries))
	for _, e := range entries {
		if search != "" &&
			!strings.Contains(strings.ToLower(e.Name), search) &&
			!strings.Contains(strings.ToLower(e.Symbol), search) {
			continue
		}
		if spec.MinChange != nil && e.PriceChangePercentage24h.LessThan(*spec.MinChange) {
			continue
		}
		if spec.MaxChange != nil && e.PriceChangePercentage24h.GreaterThan(*spec.MaxChange) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}
