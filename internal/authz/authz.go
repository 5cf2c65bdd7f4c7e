// Package authz holds the ownership decisions made before any write.
package authz

import (
	"fmt"

	"github.com/google/uuid"

	"internship-portal-backend/internal/apperror"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleCompany Role = "company"
)

// Actor is the authenticated caller.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Decide reports whether actor owns a resource owned by owner.
func Decide(actor Actor, owner uuid.UUID) Decision {
	if actor.ID == uuid.Nil || actor.ID != owner {
		return Deny
	}
	return Allow
}

// AssertOwns returns a forbidden error unless actor owns the resource.
func AssertOwns(actor Actor, owner uuid.UUID, resource string) error {
	if Decide(actor, owner) == Allow {
		return nil
	}
	return apperror.Forbidden(fmt.Sprintf("You do not own this %s", resource))
}
