package rbac

// Role names. Keep these stable; they are part of auth/RBAC contracts.
const (
	RoleViewer   = "viewer"
	RoleOperator = "operator"
	RoleApprover = "approver"
	RoleAdmin    = "admin"

	// hidden role; read-only access to audit exports
	RoleComplianceAuditor = "compliance_auditor"
)

func IsAdmin(role string) bool { return role == RoleAdmin }

func IsHiddenRole(role string) bool { return role == RoleComplianceAuditor }
