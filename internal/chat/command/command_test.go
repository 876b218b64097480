package command

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/cardstore/internal/domain"
)

func TestParseCallback(t *testing.T) {
	tests := []struct {
		name          string
		data          string
		expected      Command
		expectedError error
	}{
		{name: "No argument", data: "menu", expected: Command{Kind: Menu}},
		{name: "Order argument", data: "complete:0190c1a2-7b2e-7000-8000-000000000001", expected: Command{Kind: Complete, Arg: "0190c1a2-7b2e-7000-8000-000000000001"}},
		{name: "Group argument keeps separators", data: "buy:US|VISA|20", expected: Command{Kind: Buy, Arg: "US|VISA|20"}},
		{name: "Unknown kind", data: "sent_123", expectedError: ErrUnknownCommand},
		{name: "Missing argument", data: "cancel", expectedError: ErrMissingArg},
		{name: "Empty", data: "", expectedError: ErrUnknownCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := ParseCallback(tt.data)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cmd)
		})
	}
}

func TestData(t *testing.T) {
	data, err := New(ConfirmBuy, "US|VISA|20").Data()
	require.NoError(t, err)
	assert.Equal(t, "confirm_buy:US|VISA|20", data)

	cmd, err := ParseCallback(data)
	require.NoError(t, err)
	assert.Equal(t, New(ConfirmBuy, "US|VISA|20"), cmd)

	_, err = New(Deliver, strings.Repeat("x", MaxDataLen)).Data()
	assert.ErrorIs(t, err, ErrDataTooLong)

	assert.Panics(t, func() { New(Deliver, strings.Repeat("x", MaxDataLen)).MustData() })
}

func TestGroupKey(t *testing.T) {
	key := domain.GroupKey{CountryCode: "US", CardType: "VISA", Price: decimal.RequireFromString("20.5")}

	encoded := EncodeGroupKey(key)
	assert.Equal(t, "US|VISA|20.5", encoded)

	decoded, err := DecodeGroupKey(encoded)
	require.NoError(t, err)
	assert.Equal(t, key.CountryCode, decoded.CountryCode)
	assert.True(t, key.Price.Equal(decoded.Price))

	for _, bad := range []string{"US|VISA", "US||20", "US|VISA|abc", "US|VISA|-1"} {
		_, err := DecodeGroupKey(bad)
		assert.ErrorIs(t, err, ErrBadGroupKey, bad)
	}
}
