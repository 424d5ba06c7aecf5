package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DDricck/price-pulse-product-manager/internal/apperr"
	"github.com/DDricck/price-pulse-product-manager/internal/authz"
	"github.com/DDricck/price-pulse-product-manager/internal/model"
)

func ptr(v float64) *float64 { return &v }

func newPriceServiceForTest() (*priceHistoryService, *fakePriceRepo, *fakeProductRepo) {
	prices := newFakePriceRepo()
	products := newFakeProductRepo()
	seedProduct(products, "P100", model.ProductActive)
	svc := &priceHistoryService{entries: prices, products: products}
	return svc, prices, products
}

func TestAddEntryRoundTrip(t *testing.T) {
	svc, _, _ := newPriceServiceForTest()

	_, err := svc.Add(adminActor(), "P100", &PriceEntryRequest{EffectiveDate: "2024-01-01", UnitPrice: ptr(10.00)})
	require.NoError(t, err)

	entries, err := svc.List(adminActor(), "P100")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-01-01", entries[0].EffectiveDate)
	require.NotNil(t, entries[0].UnitPrice)
	assert.Equal(t, 10.00, *entries[0].UnitPrice)
}

func TestListOrdersByDateDescending(t *testing.T) {
	svc, _, _ := newPriceServiceForTest()

	for _, date := range []string{"2024-01-01", "2024-03-01", "2024-02-01"} {
		_, err := svc.Add(adminActor(), "P100", &PriceEntryRequest{EffectiveDate: date, UnitPrice: ptr(1)})
		require.NoError(t, err)
	}

	entries, err := svc.List(adminActor(), "P100")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "2024-03-01", entries[0].EffectiveDate)
	assert.Equal(t, "2024-02-01", entries[1].EffectiveDate)
	assert.Equal(t, "2024-01-01", entries[2].EffectiveDate)
}

func TestAddEntryValidationBeforeStorage(t *testing.T) {
	svc, prices, _ := newPriceServiceForTest()

	tests := []struct {
		name string
		req  PriceEntryRequest
	}{
		{"negative price", PriceEntryRequest{EffectiveDate: "2024-01-01", UnitPrice: ptr(-1)}},
		{"missing date", PriceEntryRequest{UnitPrice: ptr(5)}},
		{"malformed date", PriceEntryRequest{EffectiveDate: "01/02/2024", UnitPrice: ptr(5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(adminActor(), "P100", &tt.req)
			assert.True(t, apperr.IsKind(err, apperr.KindValidation))
			// Rejected before any storage call.
			assert.Zero(t, prices.writes)
		})
	}
}

func TestAddEntryDeniedWithoutFlag(t *testing.T) {
	svc, prices, _ := newPriceServiceForTest()
	actor := authz.Actor{Email: "bob@example.com", Permissions: model.PermissionSet{AddProduct: true}}

	_, err := svc.Add(actor, "P100", &PriceEntryRequest{EffectiveDate: "2024-01-01", UnitPrice: ptr(5)})

	assert.True(t, apperr.IsKind(err, apperr.KindPermissionDenied))
	assert.Zero(t, prices.writes)
}

func TestAddDuplicateDate(t *testing.T) {
	svc, _, _ := newPriceServiceForTest()

	_, err := svc.Add(adminActor(), "P100", &PriceEntryRequest{EffectiveDate: "2024-01-01", UnitPrice: ptr(5)})
	require.NoError(t, err)

	_, err = svc.Add(adminActor(), "P100", &PriceEntryRequest{EffectiveDate: "2024-01-01", UnitPrice: ptr(6)})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
}

func TestAddEntryUnknownProduct(t *testing.T) {
	svc, _, _ := newPriceServiceForTest()

	_, err := svc.Add(adminActor(), "NOPE", &PriceEntryRequest{EffectiveDate: "2024-01-01", UnitPrice: ptr(5)})

	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestEditEntryMovesDate(t *testing.T) {
	svc, _, _ := newPriceServiceForTest()

	_, err := svc.Add(adminActor(), "P100", &PriceEntryRequest{EffectiveDate: "2024-01-01", UnitPrice: ptr(10)})
	require.NoError(t, err)

	_, err = svc.Edit(adminActor(), "P100", "2024-01-01", &PriceEntryRequest{EffectiveDate: "2024-02-01", UnitPrice: ptr(12)})
	require.NoError(t, err)

	// Exactly one entry, at the new date, none at the old one.
	entries, err := svc.List(adminActor(), "P100")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2024-02-01", entries[0].EffectiveDate)
	assert.Equal(t, 12.0, *entries[0].UnitPrice)
}

func TestEditEntrySameDateUpdatesPrice(t *testing.T) {
	svc, _, _ := newPriceServiceForTest()

	_, err := svc.Add(adminActor(), "P100", &PriceEntryRequest{EffectiveDate: "2024-01-01", UnitPrice: ptr(10)})
	require.NoError(t, err)

	_, err = svc.Edit(adminActor(), "P100", "2024-01-01", &PriceEntryRequest{EffectiveDate: "2024-01-01", UnitPrice: ptr(11)})
	require.NoError(t, err)

	entries, _ := svc.List(adminActor(), "P100")
	require.Len(t, entries, 1)
	assert.Equal(t, 11.0, *entries[0].UnitPrice)
}

func TestEditEntryDateCollision(t *testing.T) {
	svc, _, _ := newPriceServiceForTest()

	for _, date := range []string{"2024-01-01", "2024-02-01"} {
		_, err := svc.Add(adminActor(), "P100", &PriceEntryRequest{EffectiveDate: date, UnitPrice: ptr(1)})
		require.NoError(t, err)
	}

	_, err := svc.Edit(adminActor(), "P100", "2024-01-01", &PriceEntryRequest{EffectiveDate: "2024-02-01", UnitPrice: ptr(2)})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	// Both rows are still there, untouched.
	entries, _ := svc.List(adminActor(), "P100")
	assert.Len(t, entries, 2)
}

func TestEditMissingEntry(t *testing.T) {
	svc, _, _ := newPriceServiceForTest()

	_, err := svc.Edit(adminActor(), "P100", "2024-01-01", &PriceEntryRequest{EffectiveDate: "2024-02-01", UnitPrice: ptr(2)})

	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDeleteEntry(t *testing.T) {
	svc, _, _ := newPriceServiceForTest()

	_, err := svc.Add(adminActor(), "P100", &PriceEntryRequest{EffectiveDate: "2024-01-01", UnitPrice: ptr(10)})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(adminActor(), "P100", "2024-01-01"))

	entries, _ := svc.List(adminActor(), "P100")
	assert.Len(t, entries, 0)

	err = svc.Delete(adminActor(), "P100", "2024-01-01")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestDeleteEntryDeniedWithoutFlag(t *testing.T) {
	svc, _, _ := newPriceServiceForTest()

	_, err := svc.Add(adminActor(), "P100", &PriceEntryRequest{EffectiveDate: "2024-01-01", UnitPrice: ptr(10)})
	require.NoError(t, err)

	actor := authz.Actor{Email: "bob@example.com", Permissions: model.PermissionSet{AddPriceHistory: true, EditPriceHistory: true}}
	err = svc.Delete(actor, "P100", "2024-01-01")

	assert.True(t, apperr.IsKind(err, apperr.KindPermissionDenied))
	entries, _ := svc.List(adminActor(), "P100")
	assert.Len(t, entries, 1)
}

func TestNilPriceIsAllowed(t *testing.T) {
	// Unit price is optional; only a present negative value is invalid.
	svc, _, _ := newPriceServiceForTest()

	_, err := svc.Add(adminActor(), "P100", &PriceEntryRequest{EffectiveDate: "2024-01-01"})
	require.NoError(t, err)

	entries, _ := svc.List(adminActor(), "P100")
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].UnitPrice)
}
