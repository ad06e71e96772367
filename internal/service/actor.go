package service

import (
	"github.com/librasys/librasys-server/internal/domain"
	domainerrors "github.com/librasys/librasys-server/internal/errors"
)

// Actor identifies who is performing an operation. Handlers build it from
// verified token claims.
type Actor struct {
	Username string
	Role     domain.Role
}

// require returns a Forbidden error unless the actor's role grants the
// capability.
func (a Actor) require(c domain.Capability) error {
	if !a.Role.Can(c) {
		return domainerrors.Forbidden("you do not have permission to perform this action")
	}
	return nil
}
