package db

import (
	"context"                            // Request scoped queries
	"reservation_system/internal/domain" // Importing domain models
	"time"                               // Date range filters

	"gorm.io/gorm" // GORM ORM library
)

// ReservationFilter narrows a reservation listing. Nil fields are not applied.
type ReservationFilter struct {
	Status        *domain.Status // Exact status match
	CreatedFrom   *time.Time     // Inclusive lower bound on created_at
	CreatedBefore *time.Time     // Exclusive upper bound on created_at
}

// ReservationRepository stores reservations in the reservations table
type ReservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a reservation repository
func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create inserts a reservation
func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) error {
	return r.db.WithContext(ctx).Create(res).Error
}

// FindByID returns the reservation with the given identifier
func (r *ReservationRepository) FindByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var res domain.Reservation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&res).Error; err != nil {
		return nil, notFound(err, "reservation not found")
	}
	return &res, nil
}

// List returns reservations matching filter, oldest first
func (r *ReservationRepository) List(ctx context.Context, filter ReservationFilter) ([]domain.Reservation, error) {
	query := r.db.WithContext(ctx).Model(&domain.Reservation{}) // Start building the query
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status) // Filter by status
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom) // Filter by start of day
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at < ?", *filter.CreatedBefore) // Filter by start of next day
	}
	reservations := []domain.Reservation{}
	if err := query.Order("created_at asc").Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// UpdateStatus sets the status of a reservation and returns the updated row.
// check, when non-nil, sees the current row inside the transaction and can veto the update.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id string, status domain.Status, check func(current *domain.Reservation) error) (*domain.Reservation, error) {
	var res domain.Reservation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&res).Error; err != nil {
			return notFound(err, "reservation not found")
		}
		if check != nil {
			if err := check(&res); err != nil {
				return err // Rollback on veto
			}
		}
		if err := tx.Model(&res).Update("status", status).Error; err != nil {
			return err
		}
		res.Status = status // Last write wins
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
