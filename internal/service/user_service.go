package service

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/DDricck/price-pulse-product-manager/internal/apperr"
	"github.com/DDricck/price-pulse-product-manager/internal/authz"
	"github.com/DDricck/price-pulse-product-manager/internal/model"
	"github.com/DDricck/price-pulse-product-manager/internal/repository"
	"github.com/DDricck/price-pulse-product-manager/internal/ws"
	"github.com/DDricck/price-pulse-product-manager/pkg/mailer"
	"github.com/DDricck/price-pulse-product-manager/pkg/validator"
)

// UserManagementService is the admin-only account surface. Every method
// re-verifies the actor's admin flag before touching any data; reaching
// the view by any other means yields PermissionDenied.
type UserManagementService interface {
	List(actor authz.Actor) ([]ManagedUser, error)
	Invite(actor authz.Actor, req *InviteUserRequest) (*ManagedUser, error)
	UpdateRole(actor authz.Actor, userID uuid.UUID, role string) error
	UpdatePermissions(actor authz.Actor, userID uuid.UUID, flags model.PermissionSet) error
	Delete(actor authz.Actor, userID uuid.UUID) error
}

// ManagedUser joins an account with its role and permission side-table
// rows, defaults applied for absent rows.
type ManagedUser struct {
	model.UserResponse
	Role        string              `json:"role"`
	Permissions model.PermissionSet `json:"permissions"`
}

type InviteUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name"`
	Role      string `json:"role" validate:"required,oneof=user admin"`
}

type userManagementService struct {
	users repository.UserRepository
	roles repository.UserRoleRepository
	perms repository.UserPermissionsRepository
	mail  mailer.Mailer
	hub   *ws.Hub
	log   zerolog.Logger
}

func NewUserManagementService(
	users repository.UserRepository,
	roles repository.UserRoleRepository,
	perms repository.UserPermissionsRepository,
	mail mailer.Mailer,
	hub *ws.Hub,
	log zerolog.Logger,
) UserManagementService {
	return &userManagementService{users: users, roles: roles, perms: perms, mail: mail, hub: hub, log: log}
}

func (s *userManagementService) List(actor authz.Actor) ([]ManagedUser, error) {
	if !actor.IsAdmin {
		return nil, apperr.PermissionDenied("list users")
	}

	users, err := s.users.FindAll()
	if err != nil {
		return nil, apperr.Backend("list users", err)
	}
	roleRows, err := s.roles.FindAll()
	if err != nil {
		return nil, apperr.Backend("list roles", err)
	}
	permRows, err := s.perms.FindAll()
	if err != nil {
		return nil, apperr.Backend("list permissions", err)
	}

	roleByUser := make(map[uuid.UUID]string, len(roleRows))
	for _, r := range roleRows {
		roleByUser[r.UserID] = r.Role
	}
	permsByUser := make(map[uuid.UUID]model.PermissionSet, len(permRows))
	for _, p := range permRows {
		permsByUser[p.UserID] = p.PermissionSet
	}

	managed := make([]ManagedUser, len(users))
	for i, u := range users {
		role := roleByUser[u.ID]
		if role == "" {
			role = model.RoleUser
		}
		managed[i] = ManagedUser{
			UserResponse: u.ToResponse(),
			Role:         role,
			Permissions:  permsByUser[u.ID],
		}
	}
	return managed, nil
}

func (s *userManagementService) Invite(actor authz.Actor, req *InviteUserRequest) (*ManagedUser, error) {
	if !actor.IsAdmin {
		return nil, apperr.PermissionDenied("invite user")
	}

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(errs[0].FailedField, "failed on tag '%s'", errs[0].Tag)
	}

	if existing, _ := s.users.FindByEmail(req.Email); existing != nil {
		return nil, apperr.Conflict("email already exists")
	}

	tempPassword, err := generatePassword()
	if err != nil {
		return nil, apperr.Backend("generate temporary password", err)
	}

	user := &model.User{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  true,
	}
	if err := user.SetPassword(tempPassword); err != nil {
		return nil, apperr.Backend("hash password", err)
	}
	if err := s.users.Create(user); err != nil {
		return nil, apperr.Backend("create user", err)
	}

	if req.Role == model.RoleAdmin {
		if err := s.roles.Grant(user.ID); err != nil {
			return nil, apperr.Backend("grant admin role", err)
		}
	}

	// The account exists either way; a failed invitation mail is logged
	// and the admin can resend via forgot-password.
	if err := s.mail.SendInvitation(user.Email, user.DisplayName(), tempPassword); err != nil {
		s.log.Warn().Err(err).Str("email", user.Email).Msg("invitation mail failed")
	}

	s.hub.Publish(ws.Event{Type: "users_changed", Action: "created", Key: user.ID.String(), Actor: actor.DisplayName()})

	return &ManagedUser{
		UserResponse: user.ToResponse(),
		Role:         req.Role,
	}, nil
}

// UpdateRole keeps the role table sparse: admin upserts a row, user
// deletes any existing one.
func (s *userManagementService) UpdateRole(actor authz.Actor, userID uuid.UUID, role string) error {
	if !actor.IsAdmin {
		return apperr.PermissionDenied("update user role")
	}
	if role != model.RoleAdmin && role != model.RoleUser {
		return apperr.Validation("role", "must be 'user' or 'admin'")
	}

	if _, err := s.users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user")
		}
		return apperr.Backend("find user", err)
	}

	var err error
	if role == model.RoleAdmin {
		err = s.roles.Grant(userID)
	} else {
		err = s.roles.Revoke(userID)
	}
	if err != nil {
		return apperr.Backend("update role", err)
	}

	s.hub.Publish(ws.Event{Type: "users_changed", Action: "updated", Key: userID.String(), Actor: actor.DisplayName()})
	return nil
}

func (s *userManagementService) UpdatePermissions(actor authz.Actor, userID uuid.UUID, flags model.PermissionSet) error {
	if !actor.IsAdmin {
		return apperr.PermissionDenied("update user permissions")
	}

	if _, err := s.users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user")
		}
		return apperr.Backend("find user", err)
	}

	row := &model.UserPermissions{UserID: userID, PermissionSet: flags}
	if err := s.perms.Upsert(row); err != nil {
		return apperr.Backend("update permissions", err)
	}

	s.hub.Publish(ws.Event{Type: "users_changed", Action: "updated", Key: userID.String(), Actor: actor.DisplayName()})
	return nil
}

func (s *userManagementService) Delete(actor authz.Actor, userID uuid.UUID) error {
	if !actor.IsAdmin {
		return apperr.PermissionDenied("delete user")
	}

	if _, err := s.users.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user")
		}
		return apperr.Backend("find user", err)
	}

	// Role and permission rows cascade via their foreign keys.
	if err := s.users.Delete(userID); err != nil {
		return apperr.Backend("delete user", err)
	}

	s.hub.Publish(ws.Event{Type: "users_changed", Action: "deleted", Key: userID.String(), Actor: actor.DisplayName()})
	return nil
}

func generatePassword() (string, error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
