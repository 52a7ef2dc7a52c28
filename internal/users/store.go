package users

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("user not found")

// Store is the credential store. Every operation is a single-document
// find/insert/update keyed by email; no multi-record transactions.
type Store struct {
	DB *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.DB.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Store) Create(ctx context.Context, user *User) error {
	return s.DB.WithContext(ctx).Create(user).Error
}

// UpdateRole flips the role field on the record matching email. A missing
// email affects zero rows and is not an error.
func (s *Store) UpdateRole(ctx context.Context, email string, role Role) (int64, error) {
	if !role.Valid() {
		return 0, errors.New("invalid role")
	}
	res := s.DB.WithContext(ctx).Model(&User{}).Where("email = ?", email).Update("role", role)
	return res.RowsAffected, res.Error
}

// ListAll returns the name/email/role projection for the admin page.
func (s *Store) ListAll(ctx context.Context) ([]User, error) {
	var list []User
	err := s.DB.WithContext(ctx).
		Select("user_id", "name", "email", "role").
		Order("email").
		Find(&list).Error
	return list, err
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&User{}).Count(&n).Error
	return n, err
}

func (s *Store) GalleryBySlug(ctx context.Context, slug string) (*Gallery, error) {
	var g Gallery
	err := s.DB.WithContext(ctx).First(&g, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}
