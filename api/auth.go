package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/garnizeh/skillbridge/pkg/models"
	"github.com/garnizeh/skillbridge/pkg/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	userRepo      repository.UserRepo
	jwtSecret     string
	tokenDuration time.Duration
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(ur repository.UserRepo, jwtSecret string, tokenDuration time.Duration) *AuthHandler {
	return &AuthHandler{userRepo: ur, jwtSecret: jwtSecret, tokenDuration: tokenDuration}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "Missing fields", http.StatusBadRequest)
		return
	}

	ctx := r.Context()

	existing, err := h.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		writeStoreError(w, "register", err)
		return
	}
	if existing != nil {
		http.Error(w, "User already exists", http.StatusBadRequest)
		return
	}

	// Hash password
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	user, err := h.userRepo.CreateUserWithPassword(ctx, req.Email, req.Name, models.RoleStudent, string(hash))
	if errors.Is(err, repository.ErrDuplicateKey) {
		// lost a race with a concurrent registration
		http.Error(w, "User already exists", http.StatusBadRequest)
		return
	}
	if err != nil {
		writeStoreError(w, "register", err)
		return
	}

	h.respondWithToken(w, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "Missing fields", http.StatusBadRequest)
		return
	}

	user, err := h.userRepo.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		writeStoreError(w, "login", err)
		return
	}
	if user == nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	// seeded accounts carry no password hash and accept any password
	if user.PasswordHash != "" && bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	h.respondWithToken(w, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	// For stateless JWT, logout is client-side (just delete token)
	writeJSON(w, http.StatusOK, map[string]string{"message": "signed out"})
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, user *models.User) {
	tokenStr, err := h.issueToken(user)
	if err != nil {
		logger.Error("failed to sign token", slog.Any("err", err))
		http.Error(w, "Error signing token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, authResponse{Token: tokenStr, User: user})
}

func (h *AuthHandler) issueToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(h.tokenDuration).Unix(),
	})
	s, err := token.SignedString([]byte(h.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return s, nil
}
