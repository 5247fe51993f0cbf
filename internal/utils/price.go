package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// centsCurrencies are settled by the card gateway in hundredths
var centsCurrencies = map[string]bool{
	"USD": true,
	"THB": true,
	"TWD": true,
}

// FormatPrice renders amount in the unit the upstream payment API expects.
// CRYPTO prices stay in whole coins (KAIA up to 4 decimals, USDT exactly 2);
// STRIPE prices are integer minor units.
func FormatPrice(amount, currency, pgType string) (string, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return "", fmt.Errorf("invalid price %q", amount)
	}

	if pgType != "STRIPE" {
		switch currency {
		case "KAIA":
			s := strconv.FormatFloat(value, 'f', 4, 64)
			s = strings.TrimRight(s, "0")
			return strings.TrimSuffix(s, "."), nil
		case "USDT":
			return strconv.FormatFloat(value, 'f', 2, 64), nil
		default:
			return strconv.FormatFloat(value, 'f', -1, 64), nil
		}
	}

	if centsCurrencies[currency] {
		value *= 100
	}
	return strconv.FormatInt(int64(math.Floor(value+0.5)), 10), nil
}
