package repo

import (
	"strings"
	"sync"

	"github.com/minipos/minipos/internal/models"
)

// InMemoryAccountRepository is an in-memory implementation of AccountRepository.
type InMemoryAccountRepository struct {
	mu       sync.Mutex
	accounts []models.Account
}

func NewInMemoryAccountRepository() *InMemoryAccountRepository {
	return &InMemoryAccountRepository{
		accounts: []models.Account{},
	}
}

func (r *InMemoryAccountRepository) FindByEmail(email string) (models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if strings.EqualFold(a.Email, email) {
			return a, nil
		}
	}
	return models.Account{}, ErrAccountNotFound
}

func (r *InMemoryAccountRepository) Create(a models.Account) (models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.accounts {
		if strings.EqualFold(existing.Email, a.Email) {
			return models.Account{}, ErrDuplicateEmail
		}
	}
	r.accounts = append(r.accounts, a)
	return a, nil
}

func (r *InMemoryAccountRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accounts = []models.Account{}
}
