package currency

import (
	"fmt"
	"strings"

	"github.com/samvincent/orbital-gateway/internal/domain"
)

// numericByAlpha maps ISO-4217 alpha codes to their numeric codes.
var numericByAlpha = map[string]string{
	"USD": "840",
	"CAD": "124",
	"GBP": "826",
	"EUR": "978",
	"AUD": "036",
	"NZD": "554",
	"JPY": "392",
	"CHF": "756",
	"MXN": "484",
	"SEK": "752",
	"NOK": "578",
	"DKK": "208",
}

// alphaByCountry maps ISO-3166 alpha-2 country codes to the currency the
// gateway processes for that country.
var alphaByCountry = map[string]string{
	"US": "USD",
	"CA": "CAD",
	"GB": "GBP",
	"AU": "AUD",
	"NZ": "NZD",
	"JP": "JPY",
	"CH": "CHF",
	"MX": "MXN",
	"SE": "SEK",
	"NO": "NOK",
	"DK": "DKK",
	"DE": "EUR",
	"FR": "EUR",
	"ES": "EUR",
	"IT": "EUR",
	"NL": "EUR",
	"IE": "EUR",
}

// NumericCode resolves a currency alpha code or country code to the
// ISO-4217 numeric code the wire format requires. Resolution is fatal:
// an unknown code is a configuration error raised before any network call.
func NumericCode(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if c == "" {
		return "", domain.NewDomainError(domain.ErrorCodeConfigUnknownCurrency, "currency code is empty")
	}
	if alpha, ok := alphaByCountry[c]; ok {
		c = alpha
	}
	if numeric, ok := numericByAlpha[c]; ok {
		return numeric, nil
	}
	return "", domain.NewDomainError(domain.ErrorCodeConfigUnknownCurrency,
		fmt.Sprintf("cannot resolve currency for %q", code))
}

// IsCanadian reports whether a resolved numeric code selects the Canadian
// processing path.
func IsCanadian(numericCode string) bool {
	return numericCode == "124"
}
