package api

import (
	"net/http"

	"github.com/garnizeh/skillbridge/pkg/repository"
)

type UserHandler struct {
	userRepo repository.UserRepo
}

func NewUserHandler(ur repository.UserRepo) *UserHandler {
	return &UserHandler{userRepo: ur}
}

// Me returns the user named by the token claim. Without a token it falls
// back to the first registered user, the demo account.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if id, ok := UserIDFromContext(ctx); ok {
		user, err := h.userRepo.GetUserByID(ctx, id)
		if err != nil {
			writeStoreError(w, "get user", err)
			return
		}
		if user == nil {
			http.Error(w, "User not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, user)
		return
	}

	users, err := h.userRepo.ListUsers(ctx)
	if err != nil {
		writeStoreError(w, "list users", err)
		return
	}
	if len(users) == 0 {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, users[0])
}
