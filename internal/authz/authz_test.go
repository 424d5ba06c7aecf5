package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DDricck/price-pulse-product-manager/internal/model"
)

var allActions = []Action{
	ActionAddProduct, ActionEditProduct, ActionDeleteProduct,
	ActionAddPriceHistory, ActionEditPriceHistory, ActionDeletePriceHistory,
}

func TestAdminPassesEveryCheck(t *testing.T) {
	// Admin status overrides whatever the stored permission row says.
	actor := Actor{IsAdmin: true, Permissions: model.PermissionSet{}}

	for _, action := range allActions {
		assert.True(t, actor.Can(action), string(action))
	}
}

func TestNonAdminFlagsAreIndependent(t *testing.T) {
	actor := Actor{Permissions: model.PermissionSet{AddProduct: true, DeletePriceHistory: true}}

	assert.True(t, actor.Can(ActionAddProduct))
	assert.True(t, actor.Can(ActionDeletePriceHistory))
	assert.False(t, actor.Can(ActionEditProduct))
	assert.False(t, actor.Can(ActionDeleteProduct))
	assert.False(t, actor.Can(ActionAddPriceHistory))
	assert.False(t, actor.Can(ActionEditPriceHistory))
}

func TestZeroPermissionsDenyEverything(t *testing.T) {
	actor := Actor{}

	for _, action := range allActions {
		assert.False(t, actor.Can(action), string(action))
	}
}

func TestRole(t *testing.T) {
	assert.Equal(t, "admin", Actor{IsAdmin: true}.Role())
	assert.Equal(t, "user", Actor{}.Role())
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name  string
		actor Actor
		want  string
	}{
		{"first and last", Actor{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"}, "Jane Doe"},
		{"first only", Actor{FirstName: "Jane", Email: "jane@example.com"}, "Jane"},
		{"email local-part fallback", Actor{Email: "jane.doe@example.com"}, "jane.doe"},
		{"last name alone is ignored", Actor{LastName: "Doe", Email: "doe@example.com"}, "doe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.actor.DisplayName())
		})
	}
}
