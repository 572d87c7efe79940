package models

// Identity is the resolved caller of a protected operation.
//
// It is produced by the authentication middleware after the session token
// was verified and the user record was loaded, and is passed explicitly to
// the operations that need it.
type Identity struct {
	UserID string `json:"user_id"`
	Role   Role   `json:"role"`
}

// IsResolved reports whether the identity carries both a user and a role.
func (i Identity) IsResolved() bool {
	return i.UserID != "" && i.Role != ""
}

// Permit is the proof of a successful authorization decision.
type Permit struct {
	// Identity is the caller the permit was issued to.
	Identity Identity

	// GrantedBy is the required role that matched the caller's role.
	GrantedBy Role
}

// Credentials is the email/password pair submitted on registration and login.
type Credentials struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=256"`
}

// Session is the outcome of a successful registration or login: the
// authenticated user together with a freshly issued session token.
type Session struct {
	User  User
	Token Token
}
