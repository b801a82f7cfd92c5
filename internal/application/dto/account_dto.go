package dto

// RegisterRequest input for registration. Role is optional; when present
// it must belong to the closed role set.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=1,max=200"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=Admin Manager User"`
}

// LoginRequest input for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest input for requesting a reset email.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest input for applying a reset token.
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// MessageResponse generic success/failure envelope with a single message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ValidationErrorResponse carries the list of provider-reported validation
// errors from a failed registration.
type ValidationErrorResponse struct {
	Errors []string `json:"errors"`
}

// LoginResponse successful login payload. Token is the server-validated
// session credential; the profile fields mirror what the SPA caches.
type LoginResponse struct {
	Message   string `json:"message"`
	UserEmail string `json:"userEmail"`
	UserID    string `json:"userID"`
	Role      string `json:"role"`
	Token     string `json:"token"`
}

// ErrorResponse error envelope for non-account endpoints.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
