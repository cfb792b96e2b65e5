package auth

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

const refreshTokenFile = "refresh_tokens.json"

const refreshTokenTTL = 30 * 24 * time.Hour

type refreshToken struct {
	Email    string    `json:"email"`
	IssuedAt time.Time `json:"issued_at"`
}

var refreshTokenStore = map[string]refreshToken{}
var mu sync.Mutex

// NewRefreshToken issues an opaque refresh token bound to the account email
// and persists the store.
func NewRefreshToken(email string) (string, error) {
	mu.Lock()
	defer mu.Unlock()
	loadIfEmpty()

	token := uuid.NewString()
	refreshTokenStore[token] = refreshToken{Email: email, IssuedAt: time.Now()}
	return token, saveRefreshTokens()
}

// EmailForRefreshToken resolves a refresh token back to its account email.
func EmailForRefreshToken(token string) (string, bool) {
	mu.Lock()
	defer mu.Unlock()
	loadIfEmpty()

	rt, ok := refreshTokenStore[token]
	if !ok || time.Since(rt.IssuedAt) > refreshTokenTTL {
		return "", false
	}
	return rt.Email, true
}

// RevokeRefreshToken removes a refresh token from the store.
func RevokeRefreshToken(token string) {
	mu.Lock()
	defer mu.Unlock()
	loadIfEmpty()

	delete(refreshTokenStore, token)
	if err := saveRefreshTokens(); err != nil {
		log.Printf("failed to save refresh tokens: %v", err)
	}
}

// StartRefreshTokenCleaner periodically drops expired refresh tokens.
func StartRefreshTokenCleaner(interval time.Duration) {
	for {
		time.Sleep(interval)
		mu.Lock()
		for token, rt := range refreshTokenStore {
			if time.Since(rt.IssuedAt) > refreshTokenTTL {
				delete(refreshTokenStore, token)
			}
		}
		if err := saveRefreshTokens(); err != nil {
			log.Printf("failed to save refresh tokens: %v", err)
		}
		mu.Unlock()
	}
}

func loadIfEmpty() {
	if len(refreshTokenStore) != 0 {
		return
	}
	exists, err := fileExists(refreshTokenFile)
	if err != nil {
		log.Println("error checking refresh token file")
		return
	}
	if exists {
		if err := loadRefreshTokens(); err != nil {
			log.Printf("error loading refresh token file: %v", err)
		}
	}
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

func loadRefreshTokens() error {
	data, err := os.ReadFile(refreshTokenFile)
	if err != nil {
		if os.IsNotExist(err) {
			refreshTokenStore = map[string]refreshToken{}
			return nil
		}
		return err
	}
	return json.Unmarshal(data, &refreshTokenStore)
}

func saveRefreshTokens() error {
	data, err := json.MarshalIndent(refreshTokenStore, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(refreshTokenFile, data, 0600)
}
