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
	"github.com/DDricck/price-pulse-product-manager/pkg/validator"
)

const dateLayout = "2006-01-02"

type PriceHistoryService interface {
	List(actor authz.Actor, productCode string) ([]model.PriceHistoryResponse, error)
	Add(actor authz.Actor, productCode string, req *PriceEntryRequest) (*model.PriceHistoryResponse, error)
	Edit(actor authz.Actor, productCode, effectiveDate string, req *PriceEntryRequest) (*model.PriceHistoryResponse, error)
	Delete(actor authz.Actor, productCode, effectiveDate string) error
}

type PriceEntryRequest struct {
	EffectiveDate string   `json:"effective_date" validate:"required"`
	UnitPrice     *float64 `json:"unit_price" validate:"omitempty,gte=0"`
}

type priceHistoryService struct {
	entries  repository.PriceHistoryRepository
	products repository.ProductRepository
	hub      *ws.Hub
}

func NewPriceHistoryService(entries repository.PriceHistoryRepository, products repository.ProductRepository, hub *ws.Hub) PriceHistoryService {
	return &priceHistoryService{entries: entries, products: products, hub: hub}
}

func (s *priceHistoryService) List(actor authz.Actor, productCode string) ([]model.PriceHistoryResponse, error) {
	if err := s.requireProduct(productCode); err != nil {
		return nil, err
	}

	entries, err := s.entries.FindByProduct(productCode)
	if err != nil {
		return nil, apperr.Backend("list price history", err)
	}

	responses := make([]model.PriceHistoryResponse, len(entries))
	for i, e := range entries {
		responses[i] = e.ToResponse()
	}
	return responses, nil
}

func (s *priceHistoryService) Add(actor authz.Actor, productCode string, req *PriceEntryRequest) (*model.PriceHistoryResponse, error) {
	if !actor.Can(authz.ActionAddPriceHistory) {
		return nil, apperr.PermissionDenied("add price history")
	}

	// Validation is synchronous and local: nothing touches storage until
	// the date and price pass.
	date, err := s.validateEntry(req)
	if err != nil {
		return nil, err
	}

	if err := s.requireProduct(productCode); err != nil {
		return nil, err
	}

	if _, err := s.entries.FindByKey(productCode, date); err == nil {
		return nil, apperr.Conflict("a price entry already exists for this date")
	}

	entry := &model.PriceHistory{
		ProductCode:   productCode,
		EffectiveDate: date,
		UnitPrice:     req.UnitPrice,
	}
	if err := s.entries.Create(entry); err != nil {
		return nil, apperr.Backend("add price entry", err)
	}

	s.publish("created", productCode, req.EffectiveDate, actor)
	resp := entry.ToResponse()
	return &resp, nil
}

// Edit is keyed by the original (productCode, effectiveDate). A changed
// date is a logical move: the repository re-keys delete+insert inside one
// transaction, so old and new rows never coexist.
func (s *priceHistoryService) Edit(actor authz.Actor, productCode, effectiveDate string, req *PriceEntryRequest) (*model.PriceHistoryResponse, error) {
	if !actor.Can(authz.ActionEditPriceHistory) {
		return nil, apperr.PermissionDenied("edit price history")
	}

	origDate, err := parseDate("effective_date", effectiveDate)
	if err != nil {
		return nil, err
	}
	newDate, err := s.validateEntry(req)
	if err != nil {
		return nil, err
	}

	if _, err := s.entries.FindByKey(productCode, origDate); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("price entry")
		}
		return nil, apperr.Backend("find price entry", err)
	}

	if newDate.Equal(origDate) {
		if err := s.entries.UpdatePrice(productCode, origDate, req.UnitPrice); err != nil {
			return nil, apperr.Backend("update price entry", err)
		}
	} else {
		if _, err := s.entries.FindByKey(productCode, newDate); err == nil {
			return nil, apperr.Conflict("a price entry already exists for the new date")
		}
		entry := &model.PriceHistory{
			ProductCode:   productCode,
			EffectiveDate: newDate,
			UnitPrice:     req.UnitPrice,
		}
		if err := s.entries.Move(productCode, origDate, entry); err != nil {
			return nil, apperr.Backend("move price entry", err)
		}
	}

	s.publish("updated", productCode, req.EffectiveDate, actor)
	updated := model.PriceHistory{ProductCode: productCode, EffectiveDate: newDate, UnitPrice: req.UnitPrice}
	resp := updated.ToResponse()
	return &resp, nil
}

func (s *priceHistoryService) Delete(actor authz.Actor, productCode, effectiveDate string) error {
	if !actor.Can(authz.ActionDeletePriceHistory) {
		return apperr.PermissionDenied("delete price history")
	}

	date, err := parseDate("effective_date", effectiveDate)
	if err != nil {
		return err
	}

	if err := s.entries.Delete(productCode, date); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("price entry")
		}
		return apperr.Backend("delete price entry", err)
	}

	s.publish("deleted", productCode, effectiveDate, actor)
	return nil
}

func (s *priceHistoryService) validateEntry(req *PriceEntryRequest) (time.Time, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return time.Time{}, apperr.Validation(errs[0].FailedField, "failed on tag '%s'", errs[0].Tag)
	}
	return parseDate("effective_date", req.EffectiveDate)
}

func (s *priceHistoryService) requireProduct(code string) error {
	if _, err := s.products.FindByCode(code); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("product")
		}
		return apperr.Backend("find product", err)
	}
	return nil
}

func (s *priceHistoryService) publish(action, productCode, date string, actor authz.Actor) {
	s.hub.Publish(ws.Event{
		Type:   "price_history_changed",
		Action: action,
		Key:    productCode + "/" + date,
		Actor:  actor.DisplayName(),
	})
}

func parseDate(field, value string) (time.Time, error) {
	date, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperr.Validation(field, "invalid date, use YYYY-MM-DD")
	}
	return date, nil
}
