package authz

import (
	"errors"
	"testing"

	"taskreg/internal/common"
	"taskreg/internal/domain/model"
)

func TestAuthorizeAbsentIdentityIsAlwaysUnauthenticated(t *testing.T) {
	for _, tier := range []Tier{AnyAuthenticated, AdminOrManager, AdminOnly} {
		if err := Authorize(nil, tier); !errors.Is(err, common.ErrUnauthenticated) {
			t.Fatalf("tier %+v: want ErrUnauthenticated, got %v", tier, err)
		}
	}
}

// Exhaustive over the three roles and three tiers.
func TestAuthorizePermissionMatrix(t *testing.T) {
	cases := []struct {
		role model.Role
		tier Tier
		want error
	}{
		{model.RoleAdministrator, AnyAuthenticated, nil},
		{model.RoleManager, AnyAuthenticated, nil},
		{model.RoleUser, AnyAuthenticated, nil},

		{model.RoleAdministrator, AdminOrManager, nil},
		{model.RoleManager, AdminOrManager, nil},
		{model.RoleUser, AdminOrManager, common.ErrInsufficientRole},

		{model.RoleAdministrator, AdminOnly, nil},
		{model.RoleManager, AdminOnly, common.ErrInsufficientRole},
		{model.RoleUser, AdminOnly, common.ErrInsufficientRole},
	}

	for _, tc := range cases {
		identity := &model.Identity{ID: 1, Role: tc.role}
		err := Authorize(identity, tc.tier)
		if tc.want == nil && err != nil {
			t.Errorf("role %s, tier %+v: want allow, got %v", tc.role, tc.tier, err)
		}
		if tc.want != nil && !errors.Is(err, tc.want) {
			t.Errorf("role %s, tier %+v: want %v, got %v", tc.role, tc.tier, tc.want, err)
		}
	}
}
