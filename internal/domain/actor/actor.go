package actor

import (
	"strings"

	"hotel-booking-core/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidRole      = errs.New("invalid role")
	ErrAnonymousActor   = errs.Mark(errs.New("authenticated principal required"), errs.ErrForbidden)
	ErrSuperAdminNeeded = errs.Mark(errs.New("super-admin role required"), errs.ErrForbidden)
)

type Role string

const (
	RoleUser       Role = "user"
	RoleHotel      Role = "hotel"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super-admin"
)

func NewRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleUser, RoleHotel, RoleAdmin, RoleSuperAdmin:
		return r, nil
	default:
		return "", ErrInvalidRole
	}
}

func (r Role) String() string {
	return string(r)
}

// IsHotelStaff covers both hotel-console roles. Ownership of a particular
// booking is still decided by the booking's hotelAdmin field.
func (r Role) IsHotelStaff() bool {
	return r == RoleHotel || r == RoleAdmin
}

// Actor is the authenticated principal performing an operation.
// It is always built from verified identity claims and passed explicitly.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func New(id uuid.UUID, role Role) Actor {
	return Actor{ID: id, Role: role}
}

func (a Actor) IsAnonymous() bool {
	return a.ID == uuid.Nil
}

func (a Actor) IsSuperAdmin() bool {
	return !a.IsAnonymous() && a.Role == RoleSuperAdmin
}

// Is reports whether the actor is the principal identified by id.
func (a Actor) Is(id uuid.UUID) bool {
	return !a.IsAnonymous() && a.ID == id
}

// IsPtr is Is for nullable identifiers; a nil id never matches.
func (a Actor) IsPtr(id *uuid.UUID) bool {
	return id != nil && a.Is(*id)
}

func RequireAuthenticated(a Actor) error {
	if a.IsAnonymous() {
		return ErrAnonymousActor
	}
	return nil
}

func RequireSuperAdmin(a Actor) error {
	if err := RequireAuthenticated(a); err != nil {
		return err
	}
	if !a.IsSuperAdmin() {
		return ErrSuperAdminNeeded
	}
	return nil
}
