package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is a local account. PasswordHash is a bcrypt digest and never leaves
// the domain.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Credentials is the register/login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is an issued token plus its owner.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}

// Repository persists user accounts.
type Repository interface {
	Insert(ctx context.Context, user User) error
	FindByEmail(ctx context.Context, email string) (User, bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (User, bool, error)
}

// Config wires runtime settings for local auth.
type Config struct {
	Enabled  bool
	Secret   string
	TokenTTL time.Duration
}
