package cards

import "strings"

// Brand is a card network identifier derived from the account number.
type Brand string

const (
	BrandVisa       Brand = "visa"
	BrandMastercard Brand = "master"
	BrandAmex       Brand = "american_express"
	BrandDiscover   Brand = "discover"
	BrandDiners     Brand = "diners_club"
	BrandJCB        Brand = "jcb"
	BrandUnknown    Brand = ""
)

// Classify returns the brand for a card number based on its issuer prefix.
// Classification does not imply the number is valid; see Luhn.
func Classify(number string) Brand {
	n := Normalize(number)
	switch {
	case len(n) < 2:
		return BrandUnknown
	case n[0] == '4':
		return BrandVisa
	case hasPrefixInRange(n, 51, 55) || hasPrefixInRange4(n, 2221, 2720):
		return BrandMastercard
	case strings.HasPrefix(n, "34") || strings.HasPrefix(n, "37"):
		return BrandAmex
	case strings.HasPrefix(n, "6011") || strings.HasPrefix(n, "65") || hasPrefixInRange3(n, 644, 649):
		return BrandDiscover
	case strings.HasPrefix(n, "36") || strings.HasPrefix(n, "38") || hasPrefixInRange3(n, 300, 305):
		return BrandDiners
	case strings.HasPrefix(n, "35"):
		return BrandJCB
	}
	return BrandUnknown
}

// Normalize strips spaces and dashes from a card number.
func Normalize(number string) string {
	var b strings.Builder
	b.Grow(len(number))
	for i := 0; i < len(number); i++ {
		c := number[i]
		if c == ' ' || c == '-' {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Luhn reports whether the number passes the Luhn check.
func Luhn(number string) bool {
	n := Normalize(number)
	if len(n) < 12 {
		return false
	}
	sum, dbl := 0, false
	for i := len(n) - 1; i >= 0; i-- {
		c := n[i]
		if c < '0' || c > '9' {
			return false
		}
		d := int(c - '0')
		if dbl {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		dbl = !dbl
	}
	return sum%10 == 0
}

func prefixValue(n string, digits int) (int, bool) {
	if len(n) < digits {
		return 0, false
	}
	v := 0
	for i := 0; i < digits; i++ {
		c := n[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	return v, true
}

func hasPrefixInRange(n string, lo, hi int) bool {
	v, ok := prefixValue(n, 2)
	return ok && v >= lo && v <= hi
}

func hasPrefixInRange3(n string, lo, hi int) bool {
	v, ok := prefixValue(n, 3)
	return ok && v >= lo && v <= hi
}

func hasPrefixInRange4(n string, lo, hi int) bool {
	v, ok := prefixValue(n, 4)
	return ok && v >= lo && v <= hi
}
