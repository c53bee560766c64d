package auth

// LoginRequest carries the operator credentials.
type LoginRequest struct {
	Username string
	Password string
}

// RefreshRequest exchanges an expired access token plus its refresh token
// for a fresh pair.
type RefreshRequest struct {
	AccessToken  string
	RefreshToken string
}

// LoginResponse returns the minted token pair.
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}
