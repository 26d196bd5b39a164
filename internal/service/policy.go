package service

import (
	"reservation_system/internal/apperr" // Application error kinds
	"reservation_system/internal/domain" // Importing domain models
)

// Identity is the authenticated caller of a request
type Identity struct {
	UserID string      // Resolved user identifier
	Role   domain.Role // Role at resolution time
}

// transitions lists the status changes allowed when transitions are enforced
var transitions = map[domain.Status][]domain.Status{
	domain.StatusRequested: {domain.StatusApproved, domain.StatusCancelled},
	domain.StatusApproved:  {domain.StatusCompleted, domain.StatusCancelled},
}

// Policy decides who may change a reservation's status and to what.
// The zero value allows any authenticated caller to set any status.
type Policy struct {
	RequireStaffForStatusChange bool // Only staff may update or cancel
	EnforceTransitions          bool // Reject changes outside the transition table
}

// CanChangeStatus returns Forbidden when the caller's role is not allowed to change status
func (p Policy) CanChangeStatus(who Identity) error {
	if p.RequireStaffForStatusChange && who.Role != domain.RoleStaff {
		return apperr.New(apperr.Forbidden, "staff role required to change reservation status")
	}
	return nil
}

// CheckTransition returns InvalidTransition for a disallowed move from one status to another
func (p Policy) CheckTransition(from, to domain.Status) error {
	if !p.EnforceTransitions || CanTransition(from, to) {
		return nil
	}
	return apperr.Newf(apperr.InvalidTransition, "cannot change reservation status from %s to %s", from, to)
}

// CanTransition reports whether the transition table allows from -> to
func CanTransition(from, to domain.Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
