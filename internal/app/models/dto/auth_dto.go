package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"ada@institute.edu"`
	Password string `json:"password" binding:"required" example:"s3cretpass"`
}

// RegisterRequest represents a user registration request. Role defaults to STUDENT.
type RegisterRequest struct {
	Name           string `json:"name" binding:"required,max=100"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	Role           string `json:"role" binding:"omitempty,role" example:"STUDENT"`
	ContactDetails string `json:"contactDetails"`
}

// RegisterResponse is returned after a successful registration
type RegisterResponse struct {
	UserID  int64  `json:"userId"`
	Message string `json:"message" example:"Registration successful"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn"`
}

// LoginResponse represents successful authentication response
type LoginResponse struct {
	Message string        `json:"message" example:"Login successful"`
	Token   TokenResponse `json:"token"`
	User    *UserDTO      `json:"user"`
}
