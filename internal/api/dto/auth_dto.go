package dto

// LoginRequest payload for credential verification.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse returns both issued tokens.
type LoginResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// ValidateResponse exposes the recovered principal.
type ValidateResponse struct {
	Valid  bool   `json:"valid"`
	UserID int64  `json:"userId"`
	Email  string `json:"email,omitempty"`
	Name   string `json:"name,omitempty"`
}

// RefreshRequest payload for exchanging a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse returns the new access token and, when rotation is
// enabled, the replacement refresh token.
type RefreshResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// LogoutRequest payload for revoking a refresh token.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}
