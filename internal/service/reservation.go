package service

import (
	"context"                            // Request scoped calls
	"errors"                             // Error matching
	"reservation_system/internal/apperr" // Application error kinds
	"reservation_system/internal/db"     // Reservation filters
	"reservation_system/internal/domain" // Importing domain models
	"strings"                            // Input trimming
	"time"                               // Arrival time and date filters

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// DateLayout is the format of the reservations date filter
const DateLayout = "2006-01-02"

// arrivalLayouts are the accepted arrival time formats, tried in order
var arrivalLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04", DateLayout}

// ReservationStore persists reservations
type ReservationStore interface {
	Create(ctx context.Context, res *domain.Reservation) error
	FindByID(ctx context.Context, id string) (*domain.Reservation, error)
	List(ctx context.Context, filter db.ReservationFilter) ([]domain.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status, check func(current *domain.Reservation) error) (*domain.Reservation, error)
}

// CreateReservationInput is the createReservation payload
type CreateReservationInput struct {
	GuestName   string `json:"guestName" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone"`
	ArrivalTime string `json:"arrivalTime" validate:"required"`
	TableSize   int    `json:"tableSize" validate:"min=1"`
}

// ListFilter is the reservations query filter. Empty fields are ignored.
type ListFilter struct {
	Status string // Exact status
	Date   string // Creation day, YYYY-MM-DD in UTC
}

// ReservationService implements the reservation operations
type ReservationService struct {
	store  ReservationStore
	policy Policy
	log    logrus.FieldLogger
}

// NewReservationService creates a reservation service
func NewReservationService(store ReservationStore, policy Policy, log logrus.FieldLogger) *ReservationService {
	return &ReservationService{store: store, policy: policy, log: log}
}

// Create validates input and stores a new reservation owned by the caller
func (s *ReservationService) Create(ctx context.Context, who Identity, in CreateReservationInput) (*domain.Reservation, error) {
	in.GuestName = strings.TrimSpace(in.GuestName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.ArrivalTime = strings.TrimSpace(in.ArrivalTime)

	var fields []apperr.FieldError
	if err := validateStruct(in); err != nil {
		var verr *apperr.Error
		if !errors.As(err, &verr) || verr.Kind != apperr.Validation {
			return nil, err
		}
		fields = append(fields, verr.Fields...)
	}
	arrival, ok := parseArrival(in.ArrivalTime)
	if in.ArrivalTime != "" && !ok {
		fields = append(fields, apperr.FieldError{Field: "arrivalTime", Message: "arrivalTime must be an RFC 3339 timestamp"})
	}
	if len(fields) > 0 {
		return nil, apperr.Invalid(fields...)
	}

	res := &domain.Reservation{
		GuestName:   in.GuestName,           // Guest name
		Email:       in.Email,               // Contact email
		Phone:       in.Phone,               // Optional phone
		ArrivalTime: arrival,                // Expected arrival
		TableSize:   in.TableSize,           // Party size
		Status:      domain.StatusRequested, // Always starts as requested
		UserID:      who.UserID,             // Owner comes from the token, never the client
	}
	if err := s.store.Create(ctx, res); err != nil {
		s.log.WithFields(logrus.Fields{"user_id": who.UserID, "error": err.Error()}).Error("Failed to create reservation")
		return nil, apperr.Wrap(apperr.Internal, "failed to create reservation", err)
	}
	s.log.WithFields(logrus.Fields{
		"user_id":        who.UserID, // Owner
		"reservation_id": res.ID,     // New reservation
		"table_size":     res.TableSize,
	}).Info("Reservation created")
	return res, nil
}

// List returns reservations matching the filter
func (s *ReservationService) List(ctx context.Context, filter ListFilter) ([]domain.Reservation, error) {
	var dbFilter db.ReservationFilter
	var fields []apperr.FieldError
	if filter.Status != "" {
		status := domain.Status(filter.Status)
		if !status.Valid() {
			fields = append(fields, statusField())
		}
		dbFilter.Status = &status
	}
	if filter.Date != "" {
		day, err := time.Parse(DateLayout, filter.Date)
		if err != nil {
			fields = append(fields, apperr.FieldError{Field: "date", Message: "date must use the YYYY-MM-DD format"})
		}
		next := day.AddDate(0, 0, 1)
		// Half-open interval [day 00:00, day+1 00:00)
		dbFilter.CreatedFrom, dbFilter.CreatedBefore = &day, &next
	}
	if len(fields) > 0 {
		return nil, apperr.Invalid(fields...)
	}
	reservations, err := s.store.List(ctx, dbFilter)
	if err != nil {
		s.log.WithError(err).Error("Failed to list reservations")
		return nil, apperr.Wrap(apperr.Internal, "failed to list reservations", err)
	}
	return reservations, nil
}

// Get returns a reservation by id or a NotFound error
func (s *ReservationService) Get(ctx context.Context, id string) (*domain.Reservation, error) {
	res, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, s.storeError("get", id, err)
	}
	return res, nil
}

// UpdateStatus sets the reservation status. Transitions are not guarded unless the policy enforces them.
func (s *ReservationService) UpdateStatus(ctx context.Context, who Identity, id, status string) (*domain.Reservation, error) {
	next := domain.Status(status)
	if !next.Valid() {
		return nil, apperr.Invalid(statusField())
	}
	return s.setStatus(ctx, who, id, next)
}

// Cancel sets the reservation status to cancelled
func (s *ReservationService) Cancel(ctx context.Context, who Identity, id string) (*domain.Reservation, error) {
	return s.setStatus(ctx, who, id, domain.StatusCancelled)
}

// setStatus applies the policy and writes the new status
func (s *ReservationService) setStatus(ctx context.Context, who Identity, id string, next domain.Status) (*domain.Reservation, error) {
	if err := s.policy.CanChangeStatus(who); err != nil {
		return nil, err
	}
	res, err := s.store.UpdateStatus(ctx, id, next, func(current *domain.Reservation) error {
		return s.policy.CheckTransition(current.Status, next)
	})
	if err != nil {
		return nil, s.storeError("update_status", id, err)
	}
	s.log.WithFields(logrus.Fields{
		"user_id":        who.UserID, // Caller
		"reservation_id": res.ID,     // Updated reservation
		"status":         res.Status, // New status
	}).Info("Reservation status changed")
	return res, nil
}

// storeError passes application errors through and wraps everything else as Internal
func (s *ReservationService) storeError(action, id string, err error) error {
	if apperr.KindOf(err) != apperr.Internal {
		return err
	}
	s.log.WithFields(logrus.Fields{"action": action, "reservation_id": id, "error": err.Error()}).Error("Reservation store failure")
	return apperr.Wrap(apperr.Internal, "reservation store failure", err)
}

// statusField is the validation detail for an unknown status
func statusField() apperr.FieldError {
	return apperr.FieldError{Field: "status", Message: "status must be one of requested, approved, cancelled, completed"}
}

// parseArrival accepts RFC 3339 timestamps, minute precision local forms and bare dates, all read as UTC
func parseArrival(s string) (time.Time, bool) {
	for _, layout := range arrivalLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
