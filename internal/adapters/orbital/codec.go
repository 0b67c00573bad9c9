package orbital

import (
	"fmt"

	"github.com/samvincent/orbital-gateway/internal/cards"
	"github.com/samvincent/orbital-gateway/internal/currency"
)

// EncodeExpiry formats a card expiry as the wire's MMYY form.
func EncodeExpiry(month, year int) string {
	return fmt.Sprintf("%02d%02d", month, year%100)
}

// EncodeCurrency resolves a currency or country code to the ISO-4217
// numeric code, falling back to the configured default when the code is
// empty. An unresolvable code fails before any network call.
func EncodeCurrency(code, defaultCode string) (string, error) {
	if code == "" {
		code = defaultCode
	}
	return currency.NumericCode(code)
}

// DigitsOnly strips every non-digit character from a phone number.
// Empty input yields empty output, not an error.
func DigitsOnly(phone string) string {
	out := make([]byte, 0, len(phone))
	for i := 0; i < len(phone); i++ {
		if c := phone[i]; c >= '0' && c <= '9' {
			out = append(out, c)
		}
	}
	return string(out)
}

// CardSecValIndicator returns the CardSecValInd flag for a card brand.
// Only Visa and Discover carry the indicator: "1" when a verification
// value is supplied, "9" when not available. Every other brand returns
// ok=false and the element is omitted entirely.
func CardSecValIndicator(brand cards.Brand, hasValue bool) (string, bool) {
	if brand != cards.BrandVisa && brand != cards.BrandDiscover {
		return "", false
	}
	if hasValue {
		return "1", true
	}
	return "9", true
}
