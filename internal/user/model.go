package user

import (
	"time"

	"github.com/gofrs/uuid"
)

// User представляет зарегистрированного пользователя магазина.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Email        string    `json:"email" db:"email"`           // Уникальный логин
	PasswordHash string    `json:"-" db:"password_hash"`       // Хеш пароля (не возвращаем в ответах)
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// RegisterInput carries the raw registration form fields.
type RegisterInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// FieldErrors maps a form field name to a human-readable validation message.
// It is a plain value returned to the caller, never stored between requests.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	for field, msg := range fe {
		return field + ": " + msg
	}
	return "validation failed"
}
