package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvincent/orbital-gateway/internal/domain"
)

func TestNumericCode(t *testing.T) {
	cases := map[string]string{
		"USD": "840",
		"usd": "840",
		"CAD": "124",
		"GBP": "826",
		"EUR": "978",
		"AUD": "036",
		" JPY ": "392",
		// Country codes resolve through the country's currency.
		"US": "840",
		"CA": "124",
		"DE": "978",
		"FR": "978",
	}
	for in, want := range cases {
		got, err := NumericCode(in)
		require.NoError(t, err, "NumericCode(%q)", in)
		assert.Equal(t, want, got, "NumericCode(%q)", in)
	}
}

func TestNumericCode_Unknown(t *testing.T) {
	for _, in := range []string{"", "XXX", "ZZ", "123"} {
		_, err := NumericCode(in)
		require.Error(t, err, "NumericCode(%q)", in)
		assert.Equal(t, domain.ErrorCodeConfigUnknownCurrency, domain.GetErrorCode(err))
		assert.True(t, domain.IsConfigurationError(err))
	}
}

func TestIsCanadian(t *testing.T) {
	assert.True(t, IsCanadian("124"))
	assert.False(t, IsCanadian("840"))
	assert.False(t, IsCanadian(""))
	assert.False(t, IsCanadian("CAD"))
}
