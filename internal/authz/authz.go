// Package authz resolves a signed-in user into an Actor carrying the
// admin flag and the six-flag permission set. Checks here are advisory
// UX gating mirrored by the service layer; the database remains the
// authority on what is stored.
package authz

import (
	"strings"

	"github.com/google/uuid"

	"github.com/DDricck/price-pulse-product-manager/internal/model"
)

// Action names one gated operation.
type Action string

const (
	ActionAddProduct         Action = "product:add"
	ActionEditProduct        Action = "product:edit"
	ActionDeleteProduct      Action = "product:delete"
	ActionAddPriceHistory    Action = "price_history:add"
	ActionEditPriceHistory   Action = "price_history:edit"
	ActionDeletePriceHistory Action = "price_history:delete"
)

// Allowed reports whether the set grants the action.
func Allowed(p model.PermissionSet, a Action) bool {
	switch a {
	case ActionAddProduct:
		return p.AddProduct
	case ActionEditProduct:
		return p.EditProduct
	case ActionDeleteProduct:
		return p.DeleteProduct
	case ActionAddPriceHistory:
		return p.AddPriceHistory
	case ActionEditPriceHistory:
		return p.EditPriceHistory
	case ActionDeletePriceHistory:
		return p.DeletePriceHistory
	default:
		return false
	}
}

// Actor is the resolved identity + permission snapshot passed explicitly
// into every service call. It is rebuilt per request, never cached across
// auth-state changes.
type Actor struct {
	ID          uuid.UUID
	Email       string
	FirstName   string
	LastName    string
	IsAdmin     bool
	Permissions model.PermissionSet
}

// Can reports whether the actor may perform the action. Admins pass every
// check regardless of the stored permission row.
func (a Actor) Can(action Action) bool {
	return a.IsAdmin || Allowed(a.Permissions, action)
}

// Role is the canonical two-value role string derived from IsAdmin.
func (a Actor) Role() string {
	if a.IsAdmin {
		return model.RoleAdmin
	}
	return model.RoleUser
}

// DisplayName prefers "First Last", then the first name, then the email
// local-part.
func (a Actor) DisplayName() string {
	first := strings.TrimSpace(a.FirstName)
	last := strings.TrimSpace(a.LastName)
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	default:
		if at := strings.IndexByte(a.Email, '@'); at > 0 {
			return a.Email[:at]
		}
		return a.Email
	}
}
