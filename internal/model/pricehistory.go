package model

import "time"

// PriceHistory is one dated unit price for a product. Identity is the
// composite (ProductCode, EffectiveDate); changing the date is a move,
// not an in-place update.
type PriceHistory struct {
	ProductCode   string    `gorm:"type:varchar(50);primaryKey" json:"product_code"`
	EffectiveDate time.Time `gorm:"type:date;primaryKey" json:"-"`
	UnitPrice     *float64  `gorm:"type:numeric(12,2)" json:"unit_price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PriceHistory) TableName() string {
	return "price_history"
}

// PriceHistoryResponse for API responses, with the date in YYYY-MM-DD form.
type PriceHistoryResponse struct {
	ProductCode   string   `json:"product_code"`
	EffectiveDate string   `json:"effective_date"`
	UnitPrice     *float64 `json:"unit_price"`
}

// ToResponse converts PriceHistory to PriceHistoryResponse
func (p *PriceHistory) ToResponse() PriceHistoryResponse {
	return PriceHistoryResponse{
		ProductCode:   p.ProductCode,
		EffectiveDate: p.EffectiveDate.Format("2006-01-02"),
		UnitPrice:     p.UnitPrice,
	}
}
