package users

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/cardstore/internal/domain"
	"github.com/GlebRadaev/cardstore/internal/dto"
	"github.com/GlebRadaev/cardstore/internal/service/userservice"
)

func NewMock(t *testing.T) (chi.Router, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	h := New(service)

	r := chi.NewRouter()
	r.Get("/users/blacklist", h.GetBlacklist)
	r.Post("/users/{id}/block", h.BlockUser)
	r.Delete("/users/{id}/block", h.UnblockUser)
	return r, service
}

func TestUserActions(t *testing.T) {
	router, service := NewMock(t)

	tests := []struct {
		name         string
		method       string
		url          string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name:   "Block with reason",
			method: http.MethodPost,
			url:    "/users/7/block",
			body:   `{"reason":"chargeback"}`,
			prepareMock: func() {
				service.EXPECT().Block(gomock.Any(), int64(7), "chargeback").Return(nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name:   "Block without body",
			method: http.MethodPost,
			url:    "/users/7/block",
			prepareMock: func() {
				service.EXPECT().Block(gomock.Any(), int64(7), "").Return(nil)
			},
			expectedCode: http.StatusNoContent,
		},
		{
			name:   "Block twice",
			method: http.MethodPost,
			url:    "/users/7/block",
			prepareMock: func() {
				service.EXPECT().Block(gomock.Any(), int64(7), "").Return(userservice.ErrAlreadyBlocked)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "Bad id",
			method:       http.MethodPost,
			url:          "/users/-1/block",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "Unblock someone not blocked",
			method: http.MethodDelete,
			url:    "/users/7/block",
			prepareMock: func() {
				service.EXPECT().Unblock(gomock.Any(), int64(7)).Return(userservice.ErrNotBlocked)
			},
			expectedCode: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.url, bytes.NewBufferString(tt.body)))

			assert.Equal(t, tt.expectedCode, rec.Code)
		})
	}
}

func TestGetBlacklist(t *testing.T) {
	router, service := NewMock(t)
	service.EXPECT().Blacklist(gomock.Any()).Return([]domain.BlacklistEntry{{UserID: 7, Reason: "fraud", AddedAt: time.Now()}}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/blacklist", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var got []dto.BlacklistEntryDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, int64(7), got[0].UserID)
}
