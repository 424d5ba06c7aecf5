package service

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/DDricck/price-pulse-product-manager/internal/model"
)

// In-memory repository fakes. Each counts writes so tests can assert
// that validation failures never reach storage.

type fakeProductRepo struct {
	products map[string]model.Product
	writes   int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]model.Product)}
}

func (f *fakeProductRepo) Create(p *model.Product) error {
	f.writes++
	f.products[p.Code] = *p
	return nil
}

func (f *fakeProductRepo) FindAll(includeDeleted bool) ([]model.Product, error) {
	var out []model.Product
	for _, p := range f.products {
		if !includeDeleted && p.Status != model.ProductActive {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (f *fakeProductRepo) FindByCode(code string) (*model.Product, error) {
	p, ok := f.products[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (f *fakeProductRepo) Update(p *model.Product) error {
	f.writes++
	f.products[p.Code] = *p
	return nil
}

func (f *fakeProductRepo) SetStatus(code string, status model.ProductStatus, auditStamp string) error {
	f.writes++
	p := f.products[code]
	p.Status = status
	p.AuditStamp = &auditStamp
	f.products[code] = p
	return nil
}

type priceKey struct {
	code string
	date string
}

type fakePriceRepo struct {
	entries map[priceKey]model.PriceHistory
	writes  int
}

func newFakePriceRepo() *fakePriceRepo {
	return &fakePriceRepo{entries: make(map[priceKey]model.PriceHistory)}
}

func keyOf(code string, date time.Time) priceKey {
	return priceKey{code: code, date: date.Format("2006-01-02")}
}

func (f *fakePriceRepo) FindByProduct(code string) ([]model.PriceHistory, error) {
	var out []model.PriceHistory
	for k, e := range f.entries {
		if k.code == code {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EffectiveDate.After(out[j].EffectiveDate) })
	return out, nil
}

func (f *fakePriceRepo) FindByKey(code string, date time.Time) (*model.PriceHistory, error) {
	e, ok := f.entries[keyOf(code, date)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &e, nil
}

func (f *fakePriceRepo) Create(e *model.PriceHistory) error {
	f.writes++
	f.entries[keyOf(e.ProductCode, e.EffectiveDate)] = *e
	return nil
}

func (f *fakePriceRepo) UpdatePrice(code string, date time.Time, price *float64) error {
	f.writes++
	e := f.entries[keyOf(code, date)]
	e.UnitPrice = price
	f.entries[keyOf(code, date)] = e
	return nil
}

func (f *fakePriceRepo) Move(code string, oldDate time.Time, entry *model.PriceHistory) error {
	f.writes++
	if _, ok := f.entries[keyOf(code, oldDate)]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.entries, keyOf(code, oldDate))
	f.entries[keyOf(entry.ProductCode, entry.EffectiveDate)] = *entry
	return nil
}

func (f *fakePriceRepo) Delete(code string, date time.Time) error {
	f.writes++
	if _, ok := f.entries[keyOf(code, date)]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.entries, keyOf(code, date))
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]model.User)}
}

func (f *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (f *fakeUserRepo) FindAll() ([]model.User, error) {
	var out []model.User
	for _, u := range f.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeUserRepo) Create(u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) Update(u *model.User) error {
	f.users[u.ID] = *u
	return nil
}

func (f *fakeUserRepo) Delete(id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) UpdatePassword(id uuid.UUID, hashed string) error {
	u := f.users[id]
	u.Password = hashed
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) UpdateTokenVersion(id uuid.UUID, version string) error {
	u := f.users[id]
	u.TokenVersion = version
	f.users[id] = u
	return nil
}

func (f *fakeUserRepo) UpdateLastSignIn(id uuid.UUID) error {
	now := time.Now()
	u := f.users[id]
	u.LastSignInAt = &now
	f.users[id] = u
	return nil
}

type fakeRoleRepo struct {
	roles map[uuid.UUID]string
}

func newFakeRoleRepo() *fakeRoleRepo {
	return &fakeRoleRepo{roles: make(map[uuid.UUID]string)}
}

func (f *fakeRoleRepo) IsAdmin(id uuid.UUID) (bool, error) {
	return f.roles[id] == model.RoleAdmin, nil
}

func (f *fakeRoleRepo) FindAll() ([]model.UserRole, error) {
	var out []model.UserRole
	for id, role := range f.roles {
		out = append(out, model.UserRole{UserID: id, Role: role})
	}
	return out, nil
}

func (f *fakeRoleRepo) Grant(id uuid.UUID) error {
	f.roles[id] = model.RoleAdmin
	return nil
}

func (f *fakeRoleRepo) Revoke(id uuid.UUID) error {
	delete(f.roles, id)
	return nil
}

type fakePermRepo struct {
	rows map[uuid.UUID]model.PermissionSet
}

func newFakePermRepo() *fakePermRepo {
	return &fakePermRepo{rows: make(map[uuid.UUID]model.PermissionSet)}
}

func (f *fakePermRepo) FindByUserID(id uuid.UUID) (*model.UserPermissions, error) {
	set, ok := f.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.UserPermissions{UserID: id, PermissionSet: set}, nil
}

func (f *fakePermRepo) FindAll() ([]model.UserPermissions, error) {
	var out []model.UserPermissions
	for id, set := range f.rows {
		out = append(out, model.UserPermissions{UserID: id, PermissionSet: set})
	}
	return out, nil
}

func (f *fakePermRepo) Upsert(row *model.UserPermissions) error {
	f.rows[row.UserID] = row.PermissionSet
	return nil
}

type fakeMailer struct {
	invitations []string
	resets      []string
	err         error
}

func (f *fakeMailer) SendInvitation(to, name, password string) error {
	if f.err != nil {
		return f.err
	}
	f.invitations = append(f.invitations, to)
	return nil
}

func (f *fakeMailer) SendPasswordReset(to, name, password string) error {
	if f.err != nil {
		return f.err
	}
	f.resets = append(f.resets, to)
	return nil
}
