package model

import (
	"time"

	"github.com/google/uuid"
)

// PermissionSet is the flat six-flag grant covering every gated action.
// All flags are independent; admins are treated as holding all of them
// regardless of the stored row.
type PermissionSet struct {
	AddProduct         bool `gorm:"not null;default:false" json:"add_product"`
	EditProduct        bool `gorm:"not null;default:false" json:"edit_product"`
	DeleteProduct      bool `gorm:"not null;default:false" json:"delete_product"`
	AddPriceHistory    bool `gorm:"not null;default:false" json:"add_price_history"`
	EditPriceHistory   bool `gorm:"not null;default:false" json:"edit_price_history"`
	DeletePriceHistory bool `gorm:"not null;default:false" json:"delete_price_history"`
}

// AllPermissions is what admins implicitly resolve to.
func AllPermissions() PermissionSet {
	return PermissionSet{
		AddProduct:         true,
		EditProduct:        true,
		DeleteProduct:      true,
		AddPriceHistory:    true,
		EditPriceHistory:   true,
		DeletePriceHistory: true,
	}
}

// UserPermissions is the stored per-user grant row. One row per
// non-default user; a missing row yields the zero PermissionSet.
type UserPermissions struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	PermissionSet
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserPermissions) TableName() string {
	return "user_permissions"
}
