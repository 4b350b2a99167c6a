package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expensemanager/internal/domain"
	"expensemanager/internal/domain/expense"
	"expensemanager/internal/domain/user"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", expense.ErrExpenseNotFound, http.StatusNotFound},
		{"validation", domain.Invalid("month", "must be between 1 and 12"), http.StatusBadRequest},
		{"credentials", user.ErrInvalidCredentials, http.StatusUnauthorized},
		{"conflict", user.ErrUsernameTaken, http.StatusConflict},
		{"wrapped not found", fmt.Errorf("lookup: %w", domain.ErrNotFound), http.StatusNotFound},
		{"storage", domain.Storage("list expenses", errors.New("connection reset")), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestWriteError_HidesStorageDetails(t *testing.T) {
	log, hook := test.NewNullLogger()
	rr := httptest.NewRecorder()
	req := newRequest(http.MethodGet, "/expenses", "", 7, nil)

	writeError(rr, req, log, domain.Storage("list expenses", errors.New("password authentication failed")))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	body := decodeBody[ErrorResponse](t, rr)
	assert.Equal(t, "Internal server error", body.Error)

	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, int64(7), hook.LastEntry().Data["user_id"])
}

func TestWriteError_ClientErrorsAreNotLogged(t *testing.T) {
	log, hook := test.NewNullLogger()
	rr := httptest.NewRecorder()

	writeError(rr, newRequest(http.MethodGet, "/", "", 1, nil), log, domain.Invalid("year", "must be a four digit year"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "year must be a four digit year", decodeBody[ErrorResponse](t, rr).Error)
	assert.Empty(t, hook.Entries)
}

func TestPathPeriod(t *testing.T) {
	tests := []struct {
		name    string
		vars    map[string]string
		month   int
		year    int
		wantErr bool
	}{
		{name: "valid", vars: map[string]string{"month": "9", "year": "2024"}, month: 9, year: 2024},
		{name: "leading zero", vars: map[string]string{"month": "03", "year": "2024"}, month: 3, year: 2024},
		{name: "month 13", vars: map[string]string{"month": "13", "year": "2024"}, wantErr: true},
		{name: "month 0", vars: map[string]string{"month": "0", "year": "2024"}, wantErr: true},
		{name: "two digit year", vars: map[string]string{"month": "1", "year": "24"}, wantErr: true},
		{name: "not a number", vars: map[string]string{"month": "sep", "year": "2024"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			month, year, err := pathPeriod(newRequest(http.MethodGet, "/", "", 1, tt.vars))
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.month, month)
			assert.Equal(t, tt.year, year)
		})
	}
}

func TestPathID(t *testing.T) {
	id, err := pathID(newRequest(http.MethodGet, "/", "", 1, map[string]string{"id": "42"}))
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = pathID(newRequest(http.MethodGet, "/", "", 1, map[string]string{"id": "-1"}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = pathID(newRequest(http.MethodGet, "/", "", 1, map[string]string{"id": "abc"}))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
