package service

import (
	"context"
	"errors"
	"reservation_system/internal/apperr"
	"reservation_system/internal/db"
	"reservation_system/internal/domain"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memUsers struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	findErr error
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]*domain.User{}}
}

func (m *memUsers) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Email == user.Email {
			return apperr.New(apperr.DuplicateEmail, "duplicate")
		}
	}
	_ = user.BeforeCreate(nil)
	user.CreatedAt = time.Now()
	cp := *user
	m.byID[user.ID] = &cp
	return nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, u := range m.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "user not found")
}

func (m *memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u, ok := m.byID[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, apperr.New(apperr.NotFound, "user not found")
}

type memReservations struct {
	mu   sync.Mutex
	byID map[string]*domain.Reservation
	err  error
}

func newMemReservations() *memReservations {
	return &memReservations{byID: map[string]*domain.Reservation{}}
}

func (m *memReservations) Create(_ context.Context, res *domain.Reservation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now().UTC()
	}
	cp := *res
	m.byID[res.ID] = &cp
	return nil
}

func (m *memReservations) FindByID(_ context.Context, id string) (*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.byID[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, apperr.New(apperr.NotFound, "reservation not found")
}

func (m *memReservations) List(_ context.Context, f db.ReservationFilter) ([]domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []domain.Reservation{}
	for _, r := range m.byID {
		if f.Status != nil && r.Status != *f.Status {
			continue
		}
		if f.CreatedFrom != nil && r.CreatedAt.Before(*f.CreatedFrom) {
			continue
		}
		if f.CreatedBefore != nil && !r.CreatedAt.Before(*f.CreatedBefore) {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memReservations) UpdateStatus(_ context.Context, id string, status domain.Status, check func(*domain.Reservation) error) (*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.byID[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "reservation not found")
	}
	if check != nil {
		if err := check(r); err != nil {
			return nil, err
		}
	}
	r.Status = status
	cp := *r
	return &cp, nil
}

type stubLimiter struct {
	allowed  bool
	err      error
	failures int
	resets   int
}

func (s *stubLimiter) Allowed(context.Context, string) (bool, error) { return s.allowed, s.err }

func (s *stubLimiter) RecordFailure(context.Context, string) error {
	s.failures++
	return nil
}

func (s *stubLimiter) Reset(context.Context, string) error {
	s.resets++
	return nil
}

type failingIssuer struct{}

func (failingIssuer) Issue(string) (string, error) { return "", errors.New("signing failed") }
