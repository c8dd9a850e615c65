package dto

// RegisterRequest represents the request payload for user registration
type RegisterRequest struct {
	Username        string  `json:"username" validate:"required,min=3,max=50"`
	Email           string  `json:"email" validate:"required,email"`
	Password        string  `json:"password" validate:"required,min=6"`
	ConfirmPassword string  `json:"confirmPassword" validate:"required"`
	FaceDescriptor  string  `json:"faceDescriptor" validate:"required"`
	FaceImage       *string `json:"faceImage,omitempty"`
}

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse represents user data in API responses
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RegisterResponse is returned after successful registration
type RegisterResponse struct {
	Message string `json:"message"`
}

// LoginResponse is returned after successful login. The session token itself
// travels in an HTTP-only cookie, not in the body.
type LoginResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
