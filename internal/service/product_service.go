package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/DDricck/price-pulse-product-manager/internal/apperr"
	"github.com/DDricck/price-pulse-product-manager/internal/authz"
	"github.com/DDricck/price-pulse-product-manager/internal/model"
	"github.com/DDricck/price-pulse-product-manager/internal/repository"
	"github.com/DDricck/price-pulse-product-manager/internal/ws"
	"github.com/DDricck/price-pulse-product-manager/pkg/stamp"
	"github.com/DDricck/price-pulse-product-manager/pkg/validator"
)

type ProductService interface {
	List(actor authz.Actor, includeDeleted bool) ([]model.Product, error)
	Create(actor authz.Actor, req *ProductRequest) (*model.Product, error)
	Update(actor authz.Actor, code string, req *ProductRequest) (*model.Product, error)
	Delete(actor authz.Actor, code string) (*model.Product, error)
	Restore(actor authz.Actor, code string) (*model.Product, error)
}

type ProductRequest struct {
	Code        string  `json:"code" validate:"required,max=50"`
	Description *string `json:"description"`
	Unit        *string `json:"unit"`
}

type productService struct {
	products repository.ProductRepository
	hub      *ws.Hub
	now      func() time.Time
}

func NewProductService(products repository.ProductRepository, hub *ws.Hub) ProductService {
	return &productService{products: products, hub: hub, now: time.Now}
}

// List returns products ordered by code ascending. Deleted rows are only
// visible to admins who ask for them.
func (s *productService) List(actor authz.Actor, includeDeleted bool) ([]model.Product, error) {
	products, err := s.products.FindAll(includeDeleted && actor.IsAdmin)
	if err != nil {
		return nil, apperr.Backend("list products", err)
	}
	return products, nil
}

func (s *productService) Create(actor authz.Actor, req *ProductRequest) (*model.Product, error) {
	if !actor.Can(authz.ActionAddProduct) {
		return nil, apperr.PermissionDenied("add product")
	}

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(errs[0].FailedField, "failed on tag '%s'", errs[0].Tag)
	}

	if existing, err := s.products.FindByCode(req.Code); err == nil && existing != nil {
		return nil, apperr.Conflict("product code already exists")
	}

	product := &model.Product{
		Code:        req.Code,
		Description: req.Description,
		Unit:        req.Unit,
		Status:      model.ProductActive,
	}
	if err := s.products.Create(product); err != nil {
		return nil, apperr.Backend("create product", err)
	}

	s.hub.Publish(ws.Event{Type: "product_changed", Action: "created", Key: product.Code, Actor: actor.DisplayName()})
	return product, nil
}

func (s *productService) Update(actor authz.Actor, code string, req *ProductRequest) (*model.Product, error) {
	if !actor.Can(authz.ActionEditProduct) {
		return nil, apperr.PermissionDenied("edit product")
	}

	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, apperr.Validation(errs[0].FailedField, "failed on tag '%s'", errs[0].Tag)
	}

	product, err := s.products.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product")
		}
		return nil, apperr.Backend("find product", err)
	}

	// The code is the identity and stays put; only the descriptive
	// fields are editable.
	product.Description = req.Description
	product.Unit = req.Unit
	if err := s.products.Update(product); err != nil {
		return nil, apperr.Backend("update product", err)
	}

	s.hub.Publish(ws.Event{Type: "product_changed", Action: "updated", Key: product.Code, Actor: actor.DisplayName()})
	return product, nil
}

func (s *productService) Delete(actor authz.Actor, code string) (*model.Product, error) {
	return s.setStatus(actor, code, model.ProductDeleted, "deleted")
}

// Restore flips a deleted product back to active. Gated by the same flag
// as delete; in practice only admins reach it, since only they can list
// deleted rows.
func (s *productService) Restore(actor authz.Actor, code string) (*model.Product, error) {
	return s.setStatus(actor, code, model.ProductActive, "restored")
}

// setStatus is idempotent in effect: re-applying a status leaves the row
// unchanged except the audit stamp's timestamp advances.
func (s *productService) setStatus(actor authz.Actor, code string, status model.ProductStatus, action string) (*model.Product, error) {
	if !actor.Can(authz.ActionDeleteProduct) {
		return nil, apperr.PermissionDenied(action + " product")
	}

	if _, err := s.products.FindByCode(code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product")
		}
		return nil, apperr.Backend("find product", err)
	}

	auditStamp := stamp.Format(actor.DisplayName(), s.now())
	if err := s.products.SetStatus(code, status, auditStamp); err != nil {
		return nil, apperr.Backend(action+" product", err)
	}

	product, err := s.products.FindByCode(code)
	if err != nil {
		return nil, apperr.Backend("reload product", err)
	}

	s.hub.Publish(ws.Event{Type: "product_changed", Action: action, Key: code, Actor: actor.DisplayName()})
	return product, nil
}
