// internal/api/validators/body_test.go
package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"creator-wallet/internal/util"
)

type quoteBody struct {
	EstimatedEarningsMinor *int64 `json:"estimated_earnings_minor" validate:"required"`
	Note                   string `json:"note" validate:"omitempty,max=5"`
}

func TestDecodeJSONBody(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"estimated_earnings_minor": 5000}`))
		var body quoteBody

		require.NoError(t, DecodeJSONBody(req, &body))
		require.NotNil(t, body.EstimatedEarningsMinor)
		assert.Equal(t, int64(5000), *body.EstimatedEarningsMinor)
	})

	t.Run("MissingRequiredField", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{}`))
		var body quoteBody

		err := DecodeJSONBody(req, &body)
		assert.ErrorIs(t, err, util.ErrInvalidInput)
		assert.Contains(t, err.Error(), "estimated_earnings_minor is required")
	})

	t.Run("FractionalAmount", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"estimated_earnings_minor": 12.5}`))
		var body quoteBody

		assert.ErrorIs(t, DecodeJSONBody(req, &body), util.ErrInvalidAmount)
	})

	t.Run("UnknownField", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"estimated_earnings_minor": 1, "extra": true}`))
		var body quoteBody

		assert.ErrorIs(t, DecodeJSONBody(req, &body), util.ErrInvalidInput)
	})

	t.Run("TooLong", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(`{"estimated_earnings_minor": 1, "note": "too long"}`))
		var body quoteBody

		err := DecodeJSONBody(req, &body)
		assert.ErrorIs(t, err, util.ErrInvalidInput)
		assert.Contains(t, err.Error(), "note must be at most 5 characters")
	})
}

func TestParseQueryInt(t *testing.T) {
	req := httptest.NewRequest("GET", "/?limit=25&offset=abc&big=1000", nil)

	v, err := ParseQueryInt(req, "limit", 20, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 25, v)

	v, err = ParseQueryInt(req, "missing", 20, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 20, v)

	_, err = ParseQueryInt(req, "offset", 0, 0, 1000)
	assert.ErrorIs(t, err, util.ErrInvalidInput)

	_, err = ParseQueryInt(req, "big", 20, 1, 100)
	assert.ErrorIs(t, err, util.ErrInvalidInput)
}
