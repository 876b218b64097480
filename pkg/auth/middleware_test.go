package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	jwtService := NewJWTService(testSecret)
	valid, _ := jwtService.GenerateJWT(42, time.Now().Add(time.Hour))

	var seen int64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserID(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := Middleware(jwtService)(next)

	tests := []struct {
		name         string
		header       string
		expectedCode int
		expectedID   int64
	}{
		{name: "no header", expectedCode: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic abc", expectedCode: http.StatusUnauthorized},
		{name: "bad token", header: "Bearer nope", expectedCode: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + valid, expectedCode: http.StatusOK, expectedID: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = 0
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			assert.Equal(t, tt.expectedID, seen)
		})
	}
}

func TestAdminOnly(t *testing.T) {
	jwtService := NewJWTService(testSecret)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name         string
		adminID      int64
		userID       int64
		expectedCode int
	}{
		{name: "admin", adminID: 1, userID: 1, expectedCode: http.StatusOK},
		{name: "customer", adminID: 1, userID: 2, expectedCode: http.StatusForbidden},
		{name: "admin not configured", adminID: 0, userID: 1, expectedCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Middleware(jwtService)(AdminOnly(tt.adminID)(next))
			token, _ := jwtService.GenerateJWT(tt.userID, time.Now().Add(time.Hour))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}
