package entity

// MarketSnapshot is the market table state handed to the presentation layer.
type MarketSnapshot struct {
	Entries          []MarketEntry `json:"entries"`
	Filters          FilterSpec    `json:"filters"`
	HasActiveFilters bool          `json:"hasActiveFilters"`
	Page             int           `json:"page"`
	PageSize         int           `json:"pageSize"`
	FetchedCount     int           `json:"fetchedCount"`
	CanPrev          bool          `json:"canPrev"`
	CanNext          bool          `json:"canNext"`
	Loading          bool          `json:"loading"`
	Error            string        `json:"error,omitempty"`
}

// AssetSnapshot is the asset detail page state handed to the presentation layer.
type AssetSnapshot struct {
	AssetID       string       `json:"assetId"`
	RangeDays     ChartRange   `json:"rangeDays"`
	Detail        *AssetDetail `json:"detail,omitempty"`
	Summary       string       `json:"summary,omitempty"`
	Chart         *ChartSeries `json:"chart,omitempty"`
	DetailLoading bool         `json:"detailLoading"`
	ChartLoading  bool         `json:"chartLoading"`
	DetailError   string       `json:"detailError,omitempty"`
	ChartError    string       `json:"chartError,omitempty"`
}
