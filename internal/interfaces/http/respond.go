package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"expensemanager/internal/domain"
	"expensemanager/internal/shared/middleware"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusFor maps a domain error kind to its HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err with the status of its kind. Server errors are
// logged and replaced by an opaque message.
func writeError(w http.ResponseWriter, r *http.Request, log logrus.FieldLogger, err error) {
	status := statusFor(err)
	message := err.Error()

	if status == http.StatusInternalServerError {
		entry := log.WithError(err).WithFields(logrus.Fields{
			"request_id": middleware.RequestIDFromContext(r.Context()),
			"path":       r.URL.Path,
		})
		if userID, ok := middleware.UserIDFromContext(r.Context()); ok {
			entry = entry.WithField("user_id", userID)
		}
		entry.Error("Request failed")
		message = "Internal server error"
	}

	writeJSON(w, status, ErrorResponse{Error: message})
}

// requireUser returns the authenticated user id, writing 401 when absent.
func requireUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return 0, false
	}
	return userID, true
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.Invalid("", fmt.Sprintf("invalid request body: %v", err))
	}
	return nil
}

func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalid("id", "must be a positive integer")
	}
	return id, nil
}

// pathPeriod reads the {month}/{year} route variables.
func pathPeriod(r *http.Request) (month, year int, err error) {
	vars := mux.Vars(r)
	month, err = strconv.Atoi(vars["month"])
	if err != nil {
		return 0, 0, domain.Invalid("month", "must be a number")
	}
	year, err = strconv.Atoi(vars["year"])
	if err != nil {
		return 0, 0, domain.Invalid("year", "must be a number")
	}
	return month, year, domain.ValidatePeriod(month, year)
}
