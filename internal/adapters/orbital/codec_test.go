package orbital

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvincent/orbital-gateway/internal/cards"
	"github.com/samvincent/orbital-gateway/internal/domain"
)

func TestEncodeExpiry(t *testing.T) {
	assert.Equal(t, "0911", EncodeExpiry(9, 2011))
	assert.Equal(t, "1228", EncodeExpiry(12, 2028))
	assert.Equal(t, "0130", EncodeExpiry(1, 30))
}

func TestEncodeCurrency(t *testing.T) {
	code, err := EncodeCurrency("USD", "")
	require.NoError(t, err)
	assert.Equal(t, "840", code)

	code, err = EncodeCurrency("CA", "")
	require.NoError(t, err)
	assert.Equal(t, "124", code)

	// Empty code falls back to the default.
	code, err = EncodeCurrency("", "GBP")
	require.NoError(t, err)
	assert.Equal(t, "826", code)
}

func TestEncodeCurrency_Unresolvable(t *testing.T) {
	_, err := EncodeCurrency("ZZZ", "")
	require.Error(t, err)
	assert.True(t, domain.IsConfigurationError(err))

	_, err = EncodeCurrency("", "")
	require.Error(t, err)
	assert.Equal(t, domain.ErrorCodeConfigUnknownCurrency, domain.GetErrorCode(err))
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "5555555555", DigitsOnly("(555) 555-5555"))
	assert.Equal(t, "18005551234", DigitsOnly("+1 800 555 1234"))
	assert.Equal(t, "", DigitsOnly(""))
	assert.Equal(t, "", DigitsOnly("ext."))
}

func TestCardSecValIndicator(t *testing.T) {
	ind, ok := CardSecValIndicator(cards.BrandVisa, true)
	require.True(t, ok)
	assert.Equal(t, "1", ind)

	ind, ok = CardSecValIndicator(cards.BrandVisa, false)
	require.True(t, ok)
	assert.Equal(t, "9", ind)

	ind, ok = CardSecValIndicator(cards.BrandDiscover, true)
	require.True(t, ok)
	assert.Equal(t, "1", ind)

	ind, ok = CardSecValIndicator(cards.BrandDiscover, false)
	require.True(t, ok)
	assert.Equal(t, "9", ind)

	// Other brands never carry the indicator, with or without a value.
	_, ok = CardSecValIndicator(cards.BrandMastercard, true)
	assert.False(t, ok)
	_, ok = CardSecValIndicator(cards.BrandAmex, false)
	assert.False(t, ok)
	_, ok = CardSecValIndicator(cards.BrandUnknown, true)
	assert.False(t, ok)
}
