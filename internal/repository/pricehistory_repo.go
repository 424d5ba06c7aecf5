package repository

import (
	"time"

	"github.com/DDricck/price-pulse-product-manager/internal/model"

	"gorm.io/gorm"
)

type PriceHistoryRepository interface {
	FindByProduct(productCode string) ([]model.PriceHistory, error)
	FindByKey(productCode string, effectiveDate time.Time) (*model.PriceHistory, error)
	Create(entry *model.PriceHistory) error
	UpdatePrice(productCode string, effectiveDate time.Time, unitPrice *float64) error
	Move(productCode string, oldDate time.Time, entry *model.PriceHistory) error
	Delete(productCode string, effectiveDate time.Time) error
}

type priceHistoryRepo struct {
	db *gorm.DB
}

func NewPriceHistoryRepo(db *gorm.DB) PriceHistoryRepository {
	return &priceHistoryRepo{db}
}

func (r *priceHistoryRepo) FindByProduct(productCode string) ([]model.PriceHistory, error) {
	var entries []model.PriceHistory
	err := r.db.
		Where("product_code = ?", productCode).
		Order("effective_date DESC").
		Find(&entries).Error
	return entries, err
}

func (r *priceHistoryRepo) FindByKey(productCode string, effectiveDate time.Time) (*model.PriceHistory, error) {
	var entry model.PriceHistory
	err := r.db.
		First(&entry, "product_code = ? AND effective_date = ?", productCode, effectiveDate).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *priceHistoryRepo) Create(entry *model.PriceHistory) error {
	return r.db.Create(entry).Error
}

func (r *priceHistoryRepo) UpdatePrice(productCode string, effectiveDate time.Time, unitPrice *float64) error {
	return r.db.Model(&model.PriceHistory{}).
		Where("product_code = ? AND effective_date = ?", productCode, effectiveDate).
		Update("unit_price", unitPrice).Error
}

// Move re-keys an entry to a new effective date. Delete and insert run in
// one DB transaction so the old and new rows never coexist and a failure
// leaves the original row in place.
func (r *priceHistoryRepo) Move(productCode string, oldDate time.Time, entry *model.PriceHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&model.PriceHistory{}, "product_code = ? AND effective_date = ?", productCode, oldDate)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(entry).Error
	})
}

func (r *priceHistoryRepo) Delete(productCode string, effectiveDate time.Time) error {
	res := r.db.Delete(&model.PriceHistory{}, "product_code = ? AND effective_date = ?", productCode, effectiveDate)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
