package claims

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// the raw token is not header.payload.signature
	ErrMalformedToken = errors.New("claims: malformed token")

	// the payload segment is not base64url-encoded JSON object
	ErrInvalidEncoding = errors.New("claims: invalid payload encoding")
)

// Claims is the decoded, unverified payload of an access token.
type Claims struct {
	raw jwt.MapClaims
}

// Actor is the RFC 8693 "act" claim: the party acting on behalf of the subject.
type Actor struct {
	Subject string  // act.sub, the impersonator's email for hosted-provider tokens
	Reason  *string // act.reason, nil when absent or null
}
