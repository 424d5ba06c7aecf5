package authz

import (
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/DDricck/price-pulse-product-manager/internal/model"
	"github.com/DDricck/price-pulse-product-manager/internal/repository"
)

type Resolver struct {
	roles repository.UserRoleRepository
	perms repository.UserPermissionsRepository
	log   zerolog.Logger
}

func NewResolver(roles repository.UserRoleRepository, perms repository.UserPermissionsRepository, log zerolog.Logger) *Resolver {
	return &Resolver{roles: roles, perms: perms, log: log}
}

// Resolve builds the Actor for a user. A failing admin check resolves to
// not-admin, and a failing permissions lookup to the all-false set: the
// least-privileged path, never a crash.
func (r *Resolver) Resolve(user *model.User) Actor {
	actor := Actor{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}

	isAdmin, err := r.roles.IsAdmin(user.ID)
	if err != nil {
		r.log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("admin check failed, resolving as non-admin")
		isAdmin = false
	}
	if isAdmin {
		actor.IsAdmin = true
		actor.Permissions = model.AllPermissions()
		return actor
	}

	row, err := r.perms.FindByUserID(user.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("permissions lookup failed, resolving as all-false")
		}
		return actor
	}
	actor.Permissions = row.PermissionSet
	return actor
}
