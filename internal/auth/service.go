package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/comp2537/web-portal/internal/session"
	"github.com/comp2537/web-portal/internal/users"
)

const (
	maxNameLen     = 30
	minPasswordLen = 6
	maxPasswordLen = 30
)

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*users.User, error)
	Create(ctx context.Context, user *users.User) error
}

type SessionStore interface {
	Save(ctx context.Context, sess session.Session) error
	Delete(ctx context.Context, id string) error
	TTL() time.Duration
}

type Service struct {
	users    UserStore
	sessions SessionStore
	limiter  *loginLimiter
	newID    func() string
}

func NewService(userStore UserStore, sessionStore SessionStore, attemptsPerMinute, burst int) *Service {
	return &Service{
		users:    userStore,
		sessions: sessionStore,
		limiter:  newLoginLimiter(attemptsPerMinute, burst),
		newID:    session.NewToken,
	}
}

// Signup validates input, creates the user record with role user, and
// issues a session snapshot. Nothing is persisted on any failure.
func (s *Service) Signup(ctx context.Context, name, email, password string) (session.Session, error) {
	name = norm.NFC.String(name)
	if err := validateName(name); err != nil {
		return session.Session{}, err
	}
	if err := validateEmail(email); err != nil {
		return session.Session{}, err
	}
	if err := validatePassword(password); err != nil {
		return session.Session{}, err
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return session.Session{}, ErrEmailTaken
	}
	if !errors.Is(err, users.ErrNotFound) {
		return session.Session{}, fmt.Errorf("lookup user: %w", err)
	}

	hashed, err := users.HashPassword(password)
	if err != nil {
		return session.Session{}, fmt.Errorf("hash password: %w", err)
	}

	user := &users.User{
		UserID:         s.newID(),
		Name:           name,
		Email:          email,
		HashedPassword: hashed,
		Role:           users.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return session.Session{}, fmt.Errorf("create user: %w", err)
	}

	return s.startSession(ctx, user)
}

// Login verifies credentials and issues a session snapshot taken from the
// current user record, so a role change since signup is picked up here.
func (s *Service) Login(ctx context.Context, email, password string) (session.Session, error) {
	if err := validateEmail(email); err != nil {
		return session.Session{}, err
	}
	if err := validatePassword(password); err != nil {
		return session.Session{}, err
	}

	if !s.limiter.allow(email) {
		return session.Session{}, ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, users.ErrNotFound) {
		return session.Session{}, ErrUserNotFound
	}
	if err != nil {
		return session.Session{}, fmt.Errorf("lookup user: %w", err)
	}

	if !users.CheckPassword(user.HashedPassword, password) {
		return session.Session{}, ErrInvalidPassword
	}

	return s.startSession(ctx, user)
}

// Logout destroys the session. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

func (s *Service) startSession(ctx context.Context, user *users.User) (session.Session, error) {
	sess := session.Session{
		ID:        s.newID(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		ExpiresAt: time.Now().Add(s.sessions.TTL()),
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return session.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

func validateName(name string) error {
	if name == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) > maxNameLen {
		return &ValidationError{Field: "name", Message: "name must be at most 30 characters"}
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &ValidationError{Field: "email", Message: "email must be a valid address"}
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLen {
		return &ValidationError{Field: "password", Message: "password must be at least 6 characters"}
	}
	if len(password) > maxPasswordLen {
		return &ValidationError{Field: "password", Message: "password must be at most 30 characters"}
	}
	return nil
}
