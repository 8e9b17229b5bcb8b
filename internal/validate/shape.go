package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/freightlayer/extraction-engine/internal/country"
)

var hasDigitRe = regexp.MustCompile(`[0-9]`)
var unlocodeRe = regexp.MustCompile(`^[A-Z]{5}$`)

// IsVoyageNumber reports whether value contains at least one digit, the
// catalog's shape rule for voyage numbers (§4.2).
func IsVoyageNumber(value string) bool {
	v := strings.TrimSpace(value)
	if v == "" {
		return false
	}
	return hasDigitRe.MatchString(v)
}

// IsVesselName reports whether at least 70% of value's non-space
// characters are letters (§4.2).
func IsVesselName(value string) bool {
	v := strings.TrimSpace(value)
	if len(v) < 2 {
		return false
	}
	letters, total := 0, 0
	for _, r := range v {
		if r == ' ' {
			continue
		}
		total++
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if total == 0 {
		return false
	}
	return float64(letters)/float64(total) >= 0.70
}

// IsPortName reports whether value begins with a capital letter and is at
// least 3 characters (§4.2).
func IsPortName(value string) bool {
	v := strings.TrimSpace(value)
	if len(v) < 3 {
		return false
	}
	r := []rune(v)[0]
	return unicode.IsUpper(r)
}

// IsUNLOCODE reports whether value is exactly 5 uppercase letters (§4.2,
// §3 entity kinds).
func IsUNLOCODE(value string) bool {
	return unlocodeRe.MatchString(strings.TrimSpace(value))
}

// IsNotStopWord rejects common-word garbage shipped with C2 (§4.2).
func IsNotStopWord(value string) bool {
	return !country.IsStopWord(value)
}

// IsNotContainerOwnerCode rejects a seal candidate whose first four
// letters are a known container owner code plus category letter (§4.2).
func IsNotContainerOwnerCode(value string) bool {
	return !country.LooksLikeContainerOwnerCode(value)
}

// currencyCodes is the closed set of ISO-4217 codes the catalog
// recognizes in freight correspondence.
var currencyCodes = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "CNY": true, "JPY": true,
	"INR": true, "SGD": true, "HKD": true, "AED": true, "KRW": true,
	"AUD": true, "CAD": true, "CHF": true, "SEK": true, "NOK": true,
}

// currencySymbols maps common symbols to their ISO-4217 code.
var currencySymbols = map[string]string{
	"$": "USD", "€": "EUR", "£": "GBP", "¥": "JPY",
}

// ValidateAmount parses a free-form "CUR 1,234.56" or "$1,234.56" amount
// into its normalized {currency, value} form (§4.2).
func ValidateAmount(raw string) (currency string, value float64, ok bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", 0, false
	}

	for sym, code := range currencySymbols {
		if strings.HasPrefix(trimmed, sym) {
			currency = code
			trimmed = strings.TrimPrefix(trimmed, sym)
			break
		}
	}
	if currency == "" {
		fields := strings.Fields(trimmed)
		if len(fields) > 0 {
			candidate := strings.ToUpper(fields[0])
			if currencyCodes[candidate] {
				currency = candidate
				trimmed = strings.TrimSpace(strings.Join(fields[1:], " "))
			}
		}
	}
	if currency == "" {
		return "", 0, false
	}

	cleaned := strings.ReplaceAll(strings.TrimSpace(trimmed), ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return "", 0, false
	}
	return currency, v, true
}
