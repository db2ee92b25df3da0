package model

// Role ids assigned by the user-service.
const (
	RoleAdmin     int64 = 1
	RoleLibrarian int64 = 2
	RoleBorrower  int64 = 3
)

// Caller is the resolved identity of the requesting user, extracted from
// the session cookie by the auth middleware.
type Caller struct {
	UserID int64
	RoleID int64
}
