package session

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Session represents an active login: the short-lived bearer credential
// authorizing API requests. The long-lived refresh credential lives in an
// HTTP-only cookie held by the cookie jar and is never observable here.
type Session struct {
	AccessToken string
}

// ExpiresAt peeks at the token's exp claim without verifying the signature.
// Verification is the server's job; the client only reads the expiry for
// display and diagnostics. Returns false when the token is opaque or carries
// no expiry.
func (s *Session) ExpiresAt() (time.Time, bool) {
	if s == nil || s.AccessToken == "" {
		return time.Time{}, false
	}
	unverifiedToken, _, err := jwtlib.NewParser().ParseUnverified(s.AccessToken, jwtlib.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := unverifiedToken.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
