package handlers

import (
	"github.com/minipos/minipos/internal/pos"
	"github.com/minipos/minipos/internal/repo"
)

var (
	sessions    *pos.SessionManager
	accountRepo repo.AccountRepository
)

func SetSessionManager(m *pos.SessionManager) {
	sessions = m
}

func SetAccountRepo(r repo.AccountRepository) {
	accountRepo = r
}
