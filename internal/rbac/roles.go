package rbac

// Role names. Keep these stable; they are part of auth/RBAC contracts.
//
// admin manages rule configuration and templates, consultor works the
// pipeline (status changes, follow-ups), analista is read-only analytics.
const (
	RoleAdmin     = "admin"
	RoleConsultor = "consultor"
	RoleAnalista  = "analista"
)

func IsAdmin(role string) bool { return role == RoleAdmin }
