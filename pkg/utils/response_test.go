package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	tests := []struct {
		name     string
		code     int
		payload  any
		expected string
	}{
		{
			name:     "object payload",
			code:     http.StatusOK,
			payload:  map[string]int{"count": 3},
			expected: `{"count":3}`,
		},
		{
			name:     "nil payload writes no body",
			code:     http.StatusNoContent,
			payload:  nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			RespondWithJSON(rr, tt.code, tt.payload)

			assert.Equal(t, tt.code, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, tt.expected, strings.TrimSpace(rr.Body.String()))
		})
	}
}

func TestRespondWithError(t *testing.T) {
	rr := httptest.NewRecorder()
	RespondWithError(rr, http.StatusConflict, "order is already completed")

	assert.Equal(t, http.StatusConflict, rr.Code)
	var resp Response
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "order is already completed", resp.Message)
}

func TestDecodeJSON(t *testing.T) {
	type body struct {
		Amount string `json:"amount"`
	}

	tests := []struct {
		name      string
		raw       string
		expectErr bool
	}{
		{name: "valid body", raw: `{"amount":"10.50"}`},
		{name: "unknown field", raw: `{"amount":"1","extra":true}`, expectErr: true},
		{name: "broken json", raw: `{"amount":`, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.raw))
			var dst body
			err := DecodeJSON(req, &dst)
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, "10.50", dst.Amount)
		})
	}
}
