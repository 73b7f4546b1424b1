package rbac

// Role constants (values of the "role" claim issued by the auth gateway)
const (
	RoleSuperAdmin = "SuperAdmin"
	RoleAdmin      = "Admin"
	RoleModerator  = "Moderator"
	RoleViewer     = "Viewer"
)

// Permission constants
const (
	PermUsersView       = "users:view"
	PermUsersDetails    = "users:details"
	PermUsersUpdate     = "users:update"
	PermUsersBan        = "users:ban"
	PermUsersUnban      = "users:unban"
	PermContentView     = "content:view"
	PermContentModerate = "content:moderate"
	PermContentDelete   = "content:delete"
	PermContentReports  = "content:reports"
	PermReportsManage   = "reports:manage"
	PermAnalyticsView   = "analytics:view"
	PermSystemView      = "system:view"
	PermSystemUpdate    = "system:update"
	PermAuditView       = "audit:view"
)

// RolePermissions defines what each role can do.
var RolePermissions = map[string][]string{
	RoleSuperAdmin: {
		PermUsersView, PermUsersDetails, PermUsersUpdate, PermUsersBan, PermUsersUnban,
		PermContentView, PermContentModerate, PermContentDelete, PermContentReports, PermReportsManage,
		PermAnalyticsView, PermSystemView, PermSystemUpdate, PermAuditView,
	},
	RoleAdmin: {
		PermUsersView, PermUsersDetails, PermUsersUpdate, PermUsersBan, PermUsersUnban,
		PermContentView, PermContentModerate, PermContentDelete, PermContentReports, PermReportsManage,
		PermAnalyticsView, PermSystemView, PermAuditView,
		// Admin CANNOT: PermSystemUpdate
	},
	RoleModerator: {
		PermUsersView, PermUsersDetails, PermUsersBan,
		PermContentView, PermContentModerate, PermContentDelete, PermContentReports, PermReportsManage,
		PermAnalyticsView,
	},
	RoleViewer: {
		PermUsersView, PermContentView, PermAuditView, PermAnalyticsView,
	},
}

// HasPermission checks if a role has a specific permission.
func HasPermission(role, permission string) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}

// IsDestructive reports permissions whose actions cannot be undone by another admin action.
func IsDestructive(permission string) bool {
	return permission == PermContentDelete || permission == PermSystemUpdate
}
