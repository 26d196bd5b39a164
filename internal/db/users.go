package db

import (
	"context"                            // Request scoped queries
	"errors"                             // Error matching
	"reservation_system/internal/apperr" // Application error kinds
	"reservation_system/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// UserRepository stores users in the users table
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a user, reporting DuplicateEmail when the unique index rejects it
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Wrap(apperr.DuplicateEmail, "Email already registered", err)
	}
	return err
}

// FindByEmail returns the user registered with email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err, "user not found")
	}
	return &user, nil
}

// FindByID returns the user with the given identifier
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFound(err, "user not found")
	}
	return &user, nil
}

// notFound converts gorm.ErrRecordNotFound into a NotFound application error
func notFound(err error, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Wrap(apperr.NotFound, message, err)
	}
	return err
}
