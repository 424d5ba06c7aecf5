package repository

import (
	"errors"

	"github.com/DDricck/price-pulse-product-manager/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRoleRepository manages the elevated-role side table. Only admin
// rows are stored; absence of a row means a regular user.
type UserRoleRepository interface {
	IsAdmin(userID uuid.UUID) (bool, error)
	FindAll() ([]model.UserRole, error)
	Grant(userID uuid.UUID) error
	Revoke(userID uuid.UUID) error
}

type userRoleRepo struct {
	db *gorm.DB
}

func NewUserRoleRepo(db *gorm.DB) UserRoleRepository {
	return &userRoleRepo{db}
}

func (r *userRoleRepo) IsAdmin(userID uuid.UUID) (bool, error) {
	var row model.UserRole
	err := r.db.First(&row, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return row.Role == model.RoleAdmin, nil
}

func (r *userRoleRepo) FindAll() ([]model.UserRole, error) {
	var rows []model.UserRole
	err := r.db.Find(&rows).Error
	return rows, err
}

func (r *userRoleRepo) Grant(userID uuid.UUID) error {
	row := model.UserRole{UserID: userID, Role: model.RoleAdmin}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
	}).Create(&row).Error
}

func (r *userRoleRepo) Revoke(userID uuid.UUID) error {
	return r.db.Delete(&model.UserRole{}, "user_id = ?", userID).Error
}
