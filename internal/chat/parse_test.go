package chat

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/cardstore/internal/domain"
)

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		text string
		name string
		args string
	}{
		{"/start", "/start", ""},
		{"/add@shop_bot US;United States;VISA;20;25;5", "/add", "US;United States;VISA;20;25;5"},
		{"  /Block 7 chargeback ", "/block", "7 chargeback"},
		{"CODE-1234", "", "CODE-1234"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			name, args := splitCommand(tt.text)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestParseCardSpec(t *testing.T) {
	spec, quantity, err := parseCardSpec("US; United States ;VISA;20;25.5;5")
	require.NoError(t, err)
	assert.Equal(t, 5, quantity)
	assert.Equal(t, domain.CardSpec{
		CountryCode: "US",
		CountryName: "United States",
		CardType:    "VISA",
		Price:       decimal.NewFromInt(20),
		Value:       decimal.RequireFromString("25.5"),
	}, spec)

	for _, bad := range []string{"US;VISA;20", "US;United States;VISA;x;25;5", "US;United States;VISA;20;25;many"} {
		_, _, err := parseCardSpec(bad)
		assert.ErrorIs(t, err, ErrBadFormat, bad)
	}
}

func TestParseCharge(t *testing.T) {
	userID, amount, note, err := parseCharge("7 50 USDT tx 0xabc")
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
	assert.True(t, amount.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, "USDT tx 0xabc", note)

	_, amount, _, err = parseCharge("7 -5")
	require.NoError(t, err)
	assert.True(t, amount.IsNegative())

	for _, bad := range []string{"7", "x 50", "7 zero", "7 0", "-7 5"} {
		_, _, _, err := parseCharge(bad)
		assert.ErrorIs(t, err, ErrBadFormat, bad)
	}
}

func TestParseBlock(t *testing.T) {
	userID, reason, err := parseBlock("7 chargeback dispute")
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
	assert.Equal(t, "chargeback dispute", reason)

	userID, reason, err = parseBlock("8")
	require.NoError(t, err)
	assert.Equal(t, int64(8), userID)
	assert.Empty(t, reason)

	_, _, err = parseBlock("")
	assert.ErrorIs(t, err, ErrBadFormat)
}
