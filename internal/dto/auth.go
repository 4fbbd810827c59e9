package dto

// LoginRequest defines credentials for password login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the response for a successful login or refresh.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RefreshTokenResponse represents the response for a successful token refresh.
type RefreshTokenResponse struct {
	Token string `json:"token"`
}

// GoogleTokenSignInRequest carries a Google ID token obtained client-side.
type GoogleTokenSignInRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}
