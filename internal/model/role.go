package model

import (
	"time"

	"github.com/google/uuid"
)

// Role codes as constants. The role table stores only elevated rows:
// a missing row means RoleUser.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// UserRole elevates a user to admin. One row per elevated user.
type UserRole struct {
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role      string    `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (UserRole) TableName() string {
	return "user_roles"
}
