package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserRole  CtxKey = "Role"
	KeyRequestID CtxKey = "RequestID"
)

// Roles carried in the bearer token's "role" claim
const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
)
