package users

import (
	"fmt"

	"github.com/lib/pq"
)

// Role is the closed set of authorization roles. Stored as text; validated
// at this boundary so handlers never compare free-form strings.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	UserID         string `gorm:"primaryKey" json:"user_id"`
	Name           string `json:"name"`
	Email          string `gorm:"uniqueIndex;not null" json:"email"`
	HashedPassword string `json:"-"`
	Role           Role   `gorm:"type:text;default:'user'" json:"role"`
}

// Gallery holds the image list shown on the members page. One row per page
// slug so content can change without a deploy.
type Gallery struct {
	ID     uint           `gorm:"primaryKey"`
	Slug   string         `gorm:"uniqueIndex;not null"`
	Images pq.StringArray `gorm:"type:text[]"`
}

func (User) TableName() string    { return "portal.users" }
func (Gallery) TableName() string { return "portal.galleries" }
