package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/linjia/ai-closet/pkg/errors"
	"github.com/linjia/ai-closet/pkg/util"
)

// Service manages local accounts and bearer tokens.
type Service interface {
	Register(ctx context.Context, creds Credentials) (Session, error)
	Login(ctx context.Context, creds Credentials) (Session, error)
	Verify(ctx context.Context, token string) (User, error)
}

type service struct {
	cfg    Config
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
	newID  func() uuid.UUID
}

// NewService wires up local auth.
func NewService(cfg Config, repo Repository, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		repo:   repo,
		logger: logger.With("component", "auth.service"),
		now:    util.NowUTC,
		newID:  uuid.New,
	}
}

// Register creates an account and signs in immediately.
func (s *service) Register(ctx context.Context, creds Credentials) (Session, error) {
	email := normalizeEmail(creds.Email)
	if email == "" || !strings.Contains(email, "@") {
		return Session{}, apperrors.Wrap("invalid_input", "a valid email is required", nil)
	}
	if len(creds.Password) < 8 {
		return Session{}, apperrors.Wrap("invalid_input", "password must be at least 8 characters", nil)
	}
	if _, exists, err := s.repo.FindByEmail(ctx, email); err != nil {
		return Session{}, apperrors.Wrap("storage_error", "failed to look up account", err)
	} else if exists {
		return Session{}, apperrors.Wrap("conflict", "an account with this email already exists", nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, apperrors.Wrap("internal_error", "failed to hash password", err)
	}
	user := User{
		ID:           s.newID(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    s.now(),
	}
	if err := s.repo.Insert(ctx, user); err != nil {
		return Session{}, apperrors.Wrap("storage_error", "failed to create account", err)
	}
	s.logger.Info("account registered", "userId", user.ID)
	return s.issue(user)
}

// Login verifies credentials and issues a fresh token.
func (s *service) Login(ctx context.Context, creds Credentials) (Session, error) {
	email := normalizeEmail(creds.Email)
	user, exists, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return Session{}, apperrors.Wrap("storage_error", "failed to look up account", err)
	}
	if !exists {
		return Session{}, apperrors.Wrap("unauthorized", "invalid email or password", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		return Session{}, apperrors.Wrap("unauthorized", "invalid email or password", nil)
	}
	return s.issue(user)
}

// Verify parses a bearer token and resolves its user.
func (s *service) Verify(ctx context.Context, token string) (User, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.Wrap("unauthorized", "unexpected signing method", nil)
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return User{}, apperrors.Wrap("unauthorized", "invalid or expired token", err)
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return User{}, apperrors.Wrap("unauthorized", "invalid token claims", nil)
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return User{}, apperrors.Wrap("unauthorized", "invalid token subject", err)
	}
	user, exists, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return User{}, apperrors.Wrap("storage_error", "failed to look up account", err)
	}
	if !exists {
		return User{}, apperrors.Wrap("unauthorized", "account no longer exists", nil)
	}
	return user, nil
}

func (s *service) issue(user User) (Session, error) {
	expires := s.now().Add(s.cfg.TokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(s.now()),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return Session{}, apperrors.Wrap("internal_error", "failed to sign token", err)
	}
	return Session{Token: token, ExpiresAt: expires, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
