package repository

import (
	"github.com/DDricck/price-pulse-product-manager/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserPermissionsRepository interface {
	FindByUserID(userID uuid.UUID) (*model.UserPermissions, error)
	FindAll() ([]model.UserPermissions, error)
	Upsert(row *model.UserPermissions) error
}

type userPermissionsRepo struct {
	db *gorm.DB
}

func NewUserPermissionsRepo(db *gorm.DB) UserPermissionsRepository {
	return &userPermissionsRepo{db}
}

func (r *userPermissionsRepo) FindByUserID(userID uuid.UUID) (*model.UserPermissions, error) {
	var row model.UserPermissions
	if err := r.db.First(&row, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *userPermissionsRepo) FindAll() ([]model.UserPermissions, error) {
	var rows []model.UserPermissions
	err := r.db.Find(&rows).Error
	return rows, err
}

func (r *userPermissionsRepo) Upsert(row *model.UserPermissions) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"add_product", "edit_product", "delete_product",
			"add_price_history", "edit_price_history", "delete_price_history",
			"updated_at",
		}),
	}).Create(row).Error
}
