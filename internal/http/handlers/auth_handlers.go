package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/minipos/minipos/internal/auth"
	"github.com/minipos/minipos/internal/http/ban"
	"github.com/minipos/minipos/internal/models"
	"github.com/minipos/minipos/internal/repo"
	"golang.org/x/crypto/bcrypt"
)

// RegisterHandler godoc
// @Summary Register a new account and return a JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param account body RegisterRequest true "name, email and password"
// @Success 201 {object} RegisterResult
// @Failure 400 {object} []ValidationError
// @Failure 409 {string} string "Email exists"
// @Router /register [post]
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	validationErrors := validateRegistration(req)
	if len(validationErrors) > 0 {
		w.WriteHeader(http.StatusBadRequest)
		if err := json.NewEncoder(w).Encode(validationErrors); err != nil {
			log.Printf("Failed to write JSON response: %v", err)
		}
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "failed to hash password", http.StatusInternalServerError)
		return
	}

	account := models.Account{
		Email:        strings.TrimSpace(strings.ToLower(req.Email)),
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: string(hashed),
		CreatedAt:    time.Now(),
	}

	if _, err := accountRepo.Create(account); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			http.Error(w, "email already registered", http.StatusConflict)
			return
		}
		http.Error(w, "failed to register account", http.StatusInternalServerError)
		return
	}

	token, err := auth.GenerateToken(account)
	if err != nil {
		http.Error(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusCreated, RegisterResult{
		Message: "account registered",
		Token:   token,
	}); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// LoginHandler godoc
// @Summary Authenticate an account and return JWT and refresh tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "email and password"
// @Success 200 {object} LoginResult
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Failure 403 {string} string "Locked"
// @Router /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var credentials CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	email := strings.TrimSpace(strings.ToLower(credentials.Email))
	if ban.IsLocked(email) {
		http.Error(w, "account temporarily locked", http.StatusForbidden)
		return
	}

	account, err := accountRepo.FindByEmail(email)
	if err != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(credentials.Password)) != nil {
		ban.RecordFailure(email, r.URL.Path)
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	ban.ClearStrikes(email)

	token, err := auth.GenerateToken(account)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	refresh, err := auth.NewRefreshToken(account.Email)
	if err != nil {
		log.Printf("failed to issue refresh token: %v", err)
	}

	if err := writeJSON(w, http.StatusOK, LoginResult{Token: token, RefreshToken: refresh}); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

// RefreshHandler godoc
// @Summary Exchange a refresh token for a new JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param token body RefreshRequest true "refresh token"
// @Success 200 {object} LoginResult
// @Failure 400 {string} string "Invalid input"
// @Failure 401 {string} string "Unauthorized"
// @Router /refresh [post]
func RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	email, ok := auth.EmailForRefreshToken(req.RefreshToken)
	if !ok {
		http.Error(w, "invalid refresh token", http.StatusUnauthorized)
		return
	}

	account, err := accountRepo.FindByEmail(email)
	if err != nil {
		http.Error(w, "invalid refresh token", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateToken(account)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return
	}

	if err := writeJSON(w, http.StatusOK, LoginResult{Token: token, RefreshToken: req.RefreshToken}); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}
