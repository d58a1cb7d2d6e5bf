package dto

// LoginResponse returns the signed access token plus the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// RefreshResponse returns a freshly rotated access token.
type RefreshResponse struct {
	Token string `json:"token"`
}
