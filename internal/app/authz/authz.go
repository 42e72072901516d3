// Package authz decides whether a resolved identity may use a route. It is
// pure: the full permission matrix is checkable without any I/O.
package authz

import (
	"taskreg/internal/common"
	"taskreg/internal/domain/model"
)

// Tier is a required permission level. The zero value is unusable; use the
// exported tiers.
type Tier struct {
	roles            []model.Role
	anyAuthenticated bool
}

var (
	// AnyAuthenticated admits every valid identity regardless of role.
	AnyAuthenticated = Tier{anyAuthenticated: true}

	// AdminOnly admits administrators.
	AdminOnly = Tier{roles: []model.Role{model.RoleAdministrator}}

	// AdminOrManager admits administrators and managers.
	AdminOrManager = Tier{roles: []model.Role{model.RoleAdministrator, model.RoleManager}}
)

// Authorize allows or rejects. A nil identity is rejected with
// common.ErrUnauthenticated for every tier; a known identity outside the
// tier's role set gets common.ErrInsufficientRole.
func Authorize(identity *model.Identity, tier Tier) error {
	if identity == nil {
		return common.ErrUnauthenticated
	}
	if tier.anyAuthenticated {
		return nil
	}
	for _, role := range tier.roles {
		if identity.Role == role {
			return nil
		}
	}
	return common.ErrInsufficientRole
}
