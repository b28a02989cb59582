// Package policy is the single authorization gate. Every privileged route
// consults Authorize instead of re-checking roles ad hoc.
package policy

import "equiprental/model"

// Actions gated by role.
const (
	ActionCatalogWrite   = "catalog.write"
	ActionCategoryManage = "category.manage"
	ActionRentalViewAll  = "rental.view_all"
	ActionForceReturn    = "rental.force_return"
	ActionApprove        = "approval.manage"
)

type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision        { return Decision{Allowed: true} }
func deny(r string) Decision { return Decision{Allowed: false, Reason: r} }

// Authorize decides whether a role may perform an action. Waiting accounts
// can do nothing; teachers get the everyday surface; managers and admins get
// everything.
func Authorize(role model.Role, action string) Decision {
	if role == model.RoleWaiting || role == "" {
		return deny("account not approved")
	}

	switch action {
	case ActionCatalogWrite, ActionCategoryManage, ActionRentalViewAll, ActionForceReturn, ActionApprove:
		if role == model.RoleManager || role == model.RoleAdmin {
			return allow()
		}
		return deny("manager role required")
	default:
		// Everything else only needs an approved account.
		return allow()
	}
}
