package model

import "time"

// ProductStatus is the lifecycle state of a product. Products are never
// hard-deleted; delete/restore flips this flag.
type ProductStatus string

const (
	ProductActive  ProductStatus = "ACTIVE"
	ProductDeleted ProductStatus = "DELETED"
)

type Product struct {
	Code        string        `gorm:"type:varchar(50);primaryKey" json:"code" validate:"required"`
	Description *string       `gorm:"type:varchar(255)" json:"description,omitempty"`
	Unit        *string       `gorm:"type:varchar(20)" json:"unit,omitempty"`
	Status      ProductStatus `gorm:"type:varchar(10);not null;default:ACTIVE" json:"status"`

	// AuditStamp records the last actor and time of a status transition,
	// e.g. "Jane Doe - 1/2/2026, 3:04:05 PM". Overwritten on every
	// delete/restore; there is no structured audit log.
	AuditStamp *string `gorm:"type:varchar(255)" json:"audit_stamp,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PriceHistory []PriceHistory `gorm:"foreignKey:ProductCode;references:Code;constraint:OnDelete:CASCADE" json:"price_history,omitempty"`
}

func (Product) TableName() string {
	return "products"
}
