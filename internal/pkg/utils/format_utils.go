package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)
)

// FormatUSD renders a price as US dollars with thousands separators.
// Sub-dollar values keep 6 fractional digits, everything else 2.
// Example: 64123.456 => "$64,123.46", 0.0001234 => "$0.000123"
func FormatUSD(value decimal.Decimal) string {
	places := int32(2)
	if value.Abs().LessThan(decimal.NewFromInt(1)) {
		places = 6
	}
	sign := ""
	if value.IsNegative() {
		sign = "-"
		value = value.Abs()
	}
	return sign + "$" + groupThousands(value.StringFixed(places))
}

// FormatCompactUSD renders large amounts such as market cap and volume with a B/M/K suffix.
// Example: 1234567890 => "$1.23B"
func FormatCompactUSD(value decimal.Decimal) string {
	return "$" + compact(value, value.StringFixed(2))
}

// FormatSupply renders a coin supply. A missing or zero supply is "N/A".
func FormatSupply(value decimal.NullDecimal) string {
	if !value.Valid || value.Decimal.IsZero() {
		return "N/A"
	}
	return compact(value.Decimal, groupThousands(value.Decimal.Round(3).String()))
}

// FormatPercent renders the magnitude of a percentage change with 2 decimals; the sign is shown by the caller.
func FormatPercent(value decimal.Decimal) string {
	return value.Abs().StringFixed(2) + "%"
}

func compact(value decimal.Decimal, small string) string {
	switch {
	case value.GreaterThanOrEqual(billion):
		return value.Div(billion).StringFixed(2) + "B"
	case value.GreaterThanOrEqual(million):
		return value.Div(million).StringFixed(2) + "M"
	case value.GreaterThanOrEqual(thousand):
		return value.Div(thousand).StringFixed(2) + "K"
	default:
		return small
	}
}

// groupThousands inserts commas into the integer part of a plain decimal string.
func groupThousands(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead == 0 && len(intPart) > 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteByte(',')
		b.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}
