package service

import (
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/DDricck/price-pulse-product-manager/internal/apperr"
	"github.com/DDricck/price-pulse-product-manager/internal/authz"
	"github.com/DDricck/price-pulse-product-manager/internal/model"
	"github.com/DDricck/price-pulse-product-manager/internal/repository"
	"github.com/DDricck/price-pulse-product-manager/pkg/jwt"
	"github.com/DDricck/price-pulse-product-manager/pkg/mailer"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

type AuthService interface {
	Login(email, password string) (*LoginResponse, error)
	Logout(userID uuid.UUID) error
	ChangePassword(userID uuid.UUID, oldPassword, newPassword string) error
	ForgotPassword(email string) error
}

// LoginResponse bundles the token with the resolved permission snapshot
// so the client can gate its UI without a second round trip.
type LoginResponse struct {
	Token       string              `json:"token"`
	User        model.UserResponse  `json:"user"`
	Role        string              `json:"role"`
	IsAdmin     bool                `json:"is_admin"`
	Permissions model.PermissionSet `json:"permissions"`
}

type authService struct {
	users    repository.UserRepository
	resolver *authz.Resolver
	mail     mailer.Mailer
	log      zerolog.Logger
}

func NewAuthService(users repository.UserRepository, resolver *authz.Resolver, mail mailer.Mailer, log zerolog.Logger) AuthService {
	return &authService{users: users, resolver: resolver, mail: mail, log: log}
}

func (s *authService) Login(email, password string) (*LoginResponse, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}

	// Single session: a fresh token version invalidates older tokens.
	newTokenVersion := uuid.New().String()
	if err := s.users.UpdateTokenVersion(user.ID, newTokenVersion); err != nil {
		return nil, apperr.Backend("update session", err)
	}
	if err := s.users.UpdateLastSignIn(user.ID); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID.String()).Msg("last sign-in update failed")
	}

	actor := s.resolver.Resolve(user)

	token, err := jwt.GenerateToken(user.ID, user.Email, user.DisplayName(), newTokenVersion)
	if err != nil {
		return nil, apperr.Backend("generate token", err)
	}

	return &LoginResponse{
		Token:       token,
		User:        user.ToResponse(),
		Role:        actor.Role(),
		IsAdmin:     actor.IsAdmin,
		Permissions: actor.Permissions,
	}, nil
}

// Logout bumps the token version so any outstanding token stops
// validating.
func (s *authService) Logout(userID uuid.UUID) error {
	if err := s.users.UpdateTokenVersion(userID, uuid.New().String()); err != nil {
		return apperr.Backend("logout", err)
	}
	return nil
}

func (s *authService) ChangePassword(userID uuid.UUID, oldPassword, newPassword string) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return apperr.NotFound("user")
	}
	if !user.CheckPassword(oldPassword) {
		return ErrWrongPassword
	}
	if len(newPassword) < 6 {
		return apperr.Validation("new_password", "must be at least 6 characters")
	}
	if err := user.SetPassword(newPassword); err != nil {
		return apperr.Backend("hash password", err)
	}
	if err := s.users.UpdatePassword(userID, user.Password); err != nil {
		return apperr.Backend("update password", err)
	}
	return nil
}

// ForgotPassword resets to a generated password and mails it. An unknown
// email reports success all the same, to avoid account enumeration.
func (s *authService) ForgotPassword(email string) error {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		s.log.Info().Str("email", email).Msg("password reset requested for unknown email")
		return nil
	}

	newPassword, err := generatePassword()
	if err != nil {
		return apperr.Backend("generate password", err)
	}
	if err := user.SetPassword(newPassword); err != nil {
		return apperr.Backend("hash password", err)
	}
	if err := s.users.UpdatePassword(user.ID, user.Password); err != nil {
		return apperr.Backend("update password", err)
	}

	if err := s.mail.SendPasswordReset(user.Email, user.DisplayName(), newPassword); err != nil {
		return apperr.Backend("send reset mail", err)
	}
	return nil
}
