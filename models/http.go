package models

import "time"

// AuthResponse is returned by the register and login endpoints.
type AuthResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	Token string `json:"token"`
}

// NewAuthResponse builds the register/login response body from a session.
func NewAuthResponse(session Session) AuthResponse {
	return AuthResponse{
		ID:    session.User.ID,
		Email: session.User.Email,
		Role:  session.User.Role,
		Token: session.Token.SignedString,
	}
}

// ForgotPasswordRequest is the body of POST /api/auth/forgotpassword.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

// ResetPasswordRequest is the body of PUT /api/auth/resetpassword/{resettoken}.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,max=256"`
}

// ChangePasswordRequest is the body of PUT /api/auth/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required,max=256"`
	NewPassword     string `json:"new_password" validate:"required,max=256"`
}

// AdminContent is returned by the admin-only endpoint.
type AdminContent struct {
	Message string     `json:"message"`
	User    PublicUser `json:"user"`
	// ServedAt is the server time the content was produced.
	ServedAt time.Time `json:"served_at"`
}
