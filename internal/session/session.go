package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/comp2537/web-portal/internal/users"
)

// Session is the server-side record behind the session_id cookie. Name,
// email and role are a snapshot taken from the user record at signup or
// login time; role changes after login only show up on the next login.
type Session struct {
	ID        string     `json:"-"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      users.Role `json:"role"`
	ExpiresAt time.Time  `json:"expires_at"`
}

func (s Session) IsAdmin() bool { return s.Role == users.RoleAdmin }

// NewToken returns an unguessable session identifier.
func NewToken() string {
	return uuid.NewString()
}
