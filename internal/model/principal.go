package model

import "slices"

// Principal is the authenticated caller as seen by the service layer.
// It is rebuilt from session token claims on every request.
type Principal struct {
	UserID string           `json:"user_id"`
	Email  string           `json:"email"`
	Name   string           `json:"name,omitempty"`
	Roles  []RoleAssignment `json:"roles"`
}

// Anonymous reports whether the principal carries no user.
func (p Principal) Anonymous() bool {
	return p.UserID == ""
}

// IsSuperAdmin reports whether the principal administers the whole platform.
func (p Principal) IsSuperAdmin() bool {
	for _, r := range p.Roles {
		if r.Role == RoleSuperAdmin {
			return true
		}
	}
	return false
}

// CanManageBusiness reports whether the principal may change the business itself,
// its stalls, staff and catalogue.
func (p Principal) CanManageBusiness(businessID string) bool {
	if p.IsSuperAdmin() {
		return true
	}
	for _, r := range p.Roles {
		if r.Role == RoleBusinessOwner && r.BusinessID == businessID {
			return true
		}
	}
	return false
}

// CanManageStall reports whether the principal may change the catalogue of a stall.
func (p Principal) CanManageStall(businessID, stallID string) bool {
	if p.CanManageBusiness(businessID) {
		return true
	}
	for _, r := range p.Roles {
		if r.Role == RoleStallManager && r.BusinessID == businessID && r.StallID == stallID {
			return true
		}
	}
	return false
}

// CanOperateStall reports whether the principal may work orders of a stall.
// Staff without a stall scope work every stall of their business.
func (p Principal) CanOperateStall(businessID, stallID string) bool {
	if p.CanManageStall(businessID, stallID) {
		return true
	}
	for _, r := range p.Roles {
		if r.Role == RoleStaff && r.BusinessID == businessID && (r.StallID == "" || r.StallID == stallID) {
			return true
		}
	}
	return false
}

// WorksAt reports whether the principal holds any role in the business.
func (p Principal) WorksAt(businessID string) bool {
	if p.IsSuperAdmin() {
		return true
	}
	for _, r := range p.Roles {
		if r.BusinessID == businessID {
			return true
		}
	}
	return false
}

// StallScopes returns the stalls a principal is restricted to within a business,
// or nil when they see every stall.
func (p Principal) StallScopes(businessID string) []string {
	if p.CanManageBusiness(businessID) {
		return nil
	}
	var scopes []string
	for _, r := range p.Roles {
		if r.BusinessID != businessID {
			continue
		}
		if r.StallID == "" {
			return nil
		}
		if !slices.Contains(scopes, r.StallID) {
			scopes = append(scopes, r.StallID)
		}
	}
	return scopes
}
