package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := map[string]Brand{
		"4111111111111111":    BrandVisa,
		"4242 4242 4242 4242": BrandVisa,
		"5555555555554444":    BrandMastercard,
		"2223000048400011":    BrandMastercard,
		"2720999999999999":    BrandMastercard,
		"378282246310005":     BrandAmex,
		"341111111111111":     BrandAmex,
		"6011111111111117":    BrandDiscover,
		"6500000000000002":    BrandDiscover,
		"6445644564456445":    BrandDiscover,
		"36148900647913":      BrandDiners,
		"30569309025904":      BrandDiners,
		"3528000700000000":    BrandJCB,
		"1234567890123456":    BrandUnknown,
		"9":                   BrandUnknown,
		"":                    BrandUnknown,
	}
	for number, want := range cases {
		assert.Equal(t, want, Classify(number), "Classify(%q)", number)
	}
}

func TestClassify_MastercardRangeBoundaries(t *testing.T) {
	assert.Equal(t, BrandMastercard, Classify("5100000000000000"))
	assert.Equal(t, BrandMastercard, Classify("5599999999999999"))
	assert.Equal(t, BrandUnknown, Classify("5600000000000000"))
	assert.Equal(t, BrandUnknown, Classify("2220999999999999"))
	assert.Equal(t, BrandUnknown, Classify("2721000000000000"))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "4111111111111111", Normalize("4111 1111 1111 1111"))
	assert.Equal(t, "4111111111111111", Normalize("4111-1111-1111-1111"))
	assert.Equal(t, "", Normalize(""))
}

func TestLuhn(t *testing.T) {
	valid := []string{
		"4111111111111111",
		"4242 4242 4242 4242",
		"5555555555554444",
		"378282246310005",
		"6011111111111117",
	}
	for _, n := range valid {
		assert.True(t, Luhn(n), "Luhn(%q)", n)
	}

	invalid := []string{
		"4111111111111112",
		"1234567890123456",
		"4111",
		"411111111111111a",
		"",
	}
	for _, n := range invalid {
		assert.False(t, Luhn(n), "Luhn(%q)", n)
	}
}
