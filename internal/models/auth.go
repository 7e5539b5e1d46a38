package models

import "github.com/golang-jwt/jwt/v5"

// UpstreamLogin is the authentication payload returned by the meal API.
type UpstreamLogin struct {
	AccessToken    string `json:"access_token"`
	TokenType      string `json:"token_type"`
	ID             int    `json:"id"`
	Classification string `json:"classification"`
	Campus         string `json:"campus"`
	Active         int    `json:"active"`
	ExpiresIn      int64  `json:"expires_in"`
}

// LoginEnvelope wraps the login payload the way the upstream serves it.
type LoginEnvelope struct {
	Login UpstreamLogin `json:"login"`
}

// SessionClaims are embedded in the session token handed to the mobile app.
// The upstream bearer token travels inside the claims so the gateway stays
// stateless: every authenticated request carries what it needs to talk to
// the meal API.
type SessionClaims struct {
	jwt.RegisteredClaims
	StudentID      int    `json:"studentId"`
	Classification string `json:"classification"`
	UpstreamToken  string `json:"upstreamToken"`
}

// Student is the profile record served by the upstream student endpoint.
type Student struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Mat        string  `json:"mat"`
	Active     int     `json:"active"`
	DateValid  string  `json:"dateValid"`
	SemRegular int     `json:"semRegular"`
	CourseID   int     `json:"course_id"`
	ShiftID    int     `json:"shift_id"`
	CampusID   int     `json:"campus_id"`
	Photo      *string `json:"photo"`
}
