package auth

// LoginInput carries the operator credentials plus the caller's IP for rate
// limiting.
type LoginInput struct {
	Email    string
	Password string
	RemoteIP string
}

// RefreshInput pairs the (possibly expired) access token with the refresh
// token to rotate.
type RefreshInput struct {
	AccessToken  string
	RefreshToken string
}

// TokenPair is the issued session: a short-lived JWT plus its refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}
