package domain

import (
	"strings" // Email normalisation
	"time"    // Creation timestamp

	"github.com/google/uuid" // Opaque identifiers
	"gorm.io/gorm"           // GORM ORM library
)

// Role is the access level of a user
type Role string

// Known roles
const (
	RoleGuest Role = "guest" // Default role for self-registered users
	RoleStaff Role = "staff" // Restaurant staff
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleGuest || r == RoleStaff
}

// User Model
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`                        // Primary key, UUID
	Username  string    `gorm:"size:100;not null" json:"username"`                   // Display name
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`          // Unique login email
	Password  string    `gorm:"size:255;not null" json:"-"`                          // Hashed password, never serialised
	Role      Role      `gorm:"type:varchar(16);not null;default:guest" json:"role"` // Role: guest or staff
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`                           // Timestamp of creation
}

// BeforeCreate assigns the identifier and defaults before insert
func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString() // Store assigned identifier
	}
	if u.Role == "" {
		u.Role = RoleGuest // Default role
	}
	return nil
}

// NormalizeEmail lower-cases and trims an email so uniqueness checks are case-insensitive
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
