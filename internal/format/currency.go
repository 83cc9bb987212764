// internal/format/currency.go
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// The storefront prices everything in Indian Rupees.
const currencySymbol = "₹"

// zeroAmount is returned for anything that does not parse to a finite number.
const zeroAmount = currencySymbol + "0.00"

var indianPrinter = message.NewPrinter(language.MustParse("en-IN"))

// Currency formats an amount as a display string with the currency symbol
// prefix. Amount may be any numeric type, a numeric string or a
// json.Number-like value. Unparsable or non-finite input yields the
// zero-amount string; Currency never panics.
//
// With showDecimals the amount is rendered with exactly two decimal
// places; without it the amount is rounded to the nearest integer and no
// decimal point is shown.
func Currency(amount interface{}, showDecimals bool) string {
	value, ok := parseAmount(amount)
	if !ok {
		return zeroAmount
	}

	if showDecimals {
		return currencySymbol + strconv.FormatFloat(value, 'f', 2, 64)
	}
	return currencySymbol + strconv.FormatInt(int64(math.Round(value)), 10)
}

// CurrencyIndian formats an amount with Indian-system digit grouping
// (lakhs and crores) and two fixed decimal places. Unparsable input
// yields the zero-amount string.
func CurrencyIndian(amount interface{}) string {
	value, ok := parseAmount(amount)
	if !ok {
		return zeroAmount
	}

	formatted := indianPrinter.Sprint(number.Decimal(value,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
	return currencySymbol + formatted
}

// floater matches json.Number and product.Price.
type floater interface {
	Float64() (float64, error)
}

func parseAmount(amount interface{}) (float64, bool) {
	var value float64

	switch v := amount.(type) {
	case nil:
		return 0, false
	case float64:
		value = v
	case float32:
		value = float64(v)
	case int:
		value = float64(v)
	case int32:
		value = float64(v)
	case int64:
		value = float64(v)
	case uint:
		value = float64(v)
	case uint64:
		value = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		value = parsed
	case floater:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		value = parsed
	case fmt.Stringer:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		if err != nil {
			return 0, false
		}
		value = parsed
	default:
		return 0, false
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
