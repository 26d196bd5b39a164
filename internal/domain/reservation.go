package domain

import (
	"time" // Arrival and creation timestamps

	"github.com/google/uuid" // Opaque identifiers
	"gorm.io/gorm"           // GORM ORM library
)

// Status is the lifecycle state of a reservation
type Status string

// Reservation statuses
const (
	StatusRequested Status = "requested" // Initial state for every new reservation
	StatusApproved  Status = "approved"  // Confirmed by the restaurant
	StatusCancelled Status = "cancelled" // Cancelled by guest or staff
	StatusCompleted Status = "completed" // Guest has been served
)

// Statuses lists every status in declaration order
var Statuses = []Status{StatusRequested, StatusApproved, StatusCancelled, StatusCompleted}

// Valid reports whether s is a known status
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// MinTableSize is the smallest party a reservation can be made for
const MinTableSize = 1

// Reservation Model
type Reservation struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	GuestName   string    `gorm:"size:255;not null" json:"guestName"`
	Phone       string    `gorm:"size:50" json:"phone"`
	Email       string    `gorm:"size:255;not null" json:"email"`
	ArrivalTime time.Time `gorm:"not null" json:"arrivalTime"`
	TableSize   int       `gorm:"not null" json:"tableSize"`
	Status      Status    `gorm:"type:varchar(16);not null;default:requested;index" json:"status"`
	UserID      string    `gorm:"size:36;not null;index" json:"userId"` // Owning user, referenced not owned
	CreatedAt   time.Time `gorm:"not null;index" json:"createdAt"`
}

// BeforeCreate assigns the identifier and default status before insert
func (r *Reservation) BeforeCreate(_ *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString() // Store assigned identifier
	}
	if r.Status == "" {
		r.Status = StatusRequested // Default status
	}
	return nil
}
