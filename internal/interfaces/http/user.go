package http

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"expensemanager/internal/domain/user"
)

type UserHandler struct {
	users *user.Service
	log   logrus.FieldLogger
}

func NewUserHandler(users *user.Service, log logrus.FieldLogger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

// HandleMe returns the profile of the authenticated user
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	u, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, u)
}
