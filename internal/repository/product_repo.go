package repository

import (
	"github.com/DDricck/price-pulse-product-manager/internal/model"

	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(includeDeleted bool) ([]model.Product, error)
	FindByCode(code string) (*model.Product, error)
	Update(product *model.Product) error
	SetStatus(code string, status model.ProductStatus, auditStamp string) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(includeDeleted bool) ([]model.Product, error) {
	var products []model.Product
	q := r.db.Order("code ASC")
	if !includeDeleted {
		q = q.Where("status = ?", model.ProductActive)
	}
	err := q.Find(&products).Error
	return products, err
}

func (r *productRepo) FindByCode(code string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "code = ?", code).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

// SetStatus writes the status flag and overwrites the audit stamp in one
// statement. Applying the same status twice is fine; only the stamp moves.
func (r *productRepo) SetStatus(code string, status model.ProductStatus, auditStamp string) error {
	return r.db.Model(&model.Product{}).
		Where("code = ?", code).
		Updates(map[string]interface{}{
			"status":      status,
			"audit_stamp": auditStamp,
		}).Error
}
