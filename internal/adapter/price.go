package adapter

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/MichalMitros/price-monitor/internal/platform/models"
	"github.com/shopspring/decimal"
)

// numberToken matches digits with their grouping and decimal separators.
var numberToken = regexp.MustCompile(`\d[\d.,]*\d|\d`)

// pricePatterns are tried in order on normalized text, first match parsing as a number wins.
// Numbers next to currency marker are preferred over bare ones.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:^|[^\d.])(\d+(?:\.\d+)?)(?:zł|PLN|EUR|USD|€)`),
	regexp.MustCompile(`(?:PLN|USD|EUR|\$|€)(\d+(?:\.\d+)?)`),
	regexp.MustCompile(`(?:^|[^\d.])(\d+(?:\.\d+)?)`),
}

var currencyMarkers = []struct {
	marker   string
	currency string
}{
	{marker: "zł", currency: "PLN"},
	{marker: "pln", currency: "PLN"},
	{marker: "€", currency: "EUR"},
	{marker: "eur", currency: "EUR"},
	{marker: "$", currency: "USD"},
	{marker: "usd", currency: "USD"},
}

// ParsePrice extracts price from text like "1 234,56 zł" or "$19.99".
// It reports false when text carries no number.
func ParsePrice(text string) (decimal.Decimal, bool) {
	compact := numberToken.ReplaceAllStringFunc(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text), normalizeNumber)

	for _, pattern := range pricePatterns {
		match := pattern.FindStringSubmatch(compact)
		if match == nil {
			continue
		}

		number := match[len(match)-1]
		price, err := decimal.NewFromString(number)
		if err == nil {
			return price, true
		}
	}

	return decimal.Decimal{}, false
}

// DetectCurrency returns ISO code of currency mentioned in text or default currency.
func DetectCurrency(text string) string {
	lower := strings.ToLower(text)
	for _, cm := range currencyMarkers {
		if strings.Contains(lower, cm.marker) {
			return cm.currency
		}
	}
	return models.DefaultCurrency
}

// normalizeNumber drops grouping separators and turns decimal separator into ".",
// e.g. "1.234,56" becomes "1234.56", "1,234,567" becomes "1234567" and "49,90" becomes "49.90".
// A single separator followed by exactly 3 digits is grouping.
func normalizeNumber(number string) string {
	dots := strings.Count(number, ".")
	commas := strings.Count(number, ",")

	switch {
	case dots == 0 && commas == 0:
		return number
	case dots > 0 && commas > 0:
		if strings.LastIndex(number, ".") > strings.LastIndex(number, ",") {
			return strings.ReplaceAll(number, ",", "")
		}
		return strings.Replace(strings.ReplaceAll(number, ".", ""), ",", ".", 1)
	}

	sep := "."
	if commas > 0 {
		sep = ","
	}

	if dots+commas > 1 || len(number)-strings.Index(number, sep)-1 == 3 {
		return strings.ReplaceAll(number, sep, "")
	}

	return strings.Replace(number, sep, ".", 1)
}
