package repo

import (
	"errors"

	"github.com/minipos/minipos/internal/models"
)

// AccountRepository is the directory of registered accounts, keyed by email.
// Email comparison is case-insensitive.
type AccountRepository interface {
	FindByEmail(email string) (models.Account, error)
	Create(a models.Account) (models.Account, error)
}

// ErrAccountNotFound is returned when no account matches the given email.
var ErrAccountNotFound = errors.New("account not found")

// ErrDuplicateEmail is returned when registering an email that already exists.
var ErrDuplicateEmail = errors.New("email already registered")
