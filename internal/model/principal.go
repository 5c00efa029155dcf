package model

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin          Role = "ADMIN"
	RoleProjectManager Role = "PM"
	RoleViewer         Role = "VIEWER"
)

// Principal is the authenticated caller extracted from the JWT.
type Principal struct {
	UserID uuid.UUID
	OrgID  uuid.UUID
	Role   Role
}

func (p Principal) IsAdmin() bool          { return p.Role == RoleAdmin }
func (p Principal) IsProjectManager() bool { return p.Role == RoleProjectManager }
func (p Principal) IsViewer() bool         { return p.Role == RoleViewer }

// CanExport reports whether the principal may trigger report exports or
// snapshot runs.
func (p Principal) CanExport() bool {
	return p.Role == RoleAdmin || p.Role == RoleProjectManager
}
