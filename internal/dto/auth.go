package dto

// LoginRequest carries the student's credentials, forwarded verbatim to the
// upstream meal API.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// StudentInfo is the identity snapshot returned alongside the session token.
type StudentInfo struct {
	ID             int    `json:"id"`
	Classification string `json:"classification"`
	Campus         string `json:"campus"`
	Active         bool   `json:"active"`
}

// LoginResponse hands the mobile app its session token.
type LoginResponse struct {
	AccessToken string      `json:"accessToken"`
	TokenType   string      `json:"tokenType"`
	ExpiresIn   int64       `json:"expiresIn"`
	Student     StudentInfo `json:"student"`
}
