// Package claims reads access-token payloads without verifying them.
//
// Decode does not check the signature. Tokens reach this package straight from
// the identity provider's token endpoint over TLS, which is where their
// authenticity is established; do not feed it tokens from any other source.
package claims

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

// Decode returns the payload of a compact token. It fails with
// ErrMalformedToken or ErrInvalidEncoding and never panics.
func Decode(rawToken string) (*Claims, error) {
	parts := strings.Split(rawToken, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedToken, len(parts))
	}

	payload, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}

	var m jwt.MapClaims
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEncoding, err)
	}

	// "null" unmarshals cleanly into a nil map
	if m == nil {
		return nil, fmt.Errorf("%w: payload is not an object", ErrInvalidEncoding)
	}

	return &Claims{raw: m}, nil
}

// Get returns a top-level claim.
func (c *Claims) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}

	v, ok := c.raw[key]
	return v, ok
}

// Subject returns the sub claim, or "" if absent.
func (c *Claims) Subject() string {
	if c == nil {
		return ""
	}

	sub, _ := c.raw.GetSubject()
	return sub
}

// Keys lists the claim names present, for diagnostics.
func (c *Claims) Keys() []string {
	if c == nil {
		return nil
	}

	keys := make([]string, 0, len(c.raw))
	for k := range c.raw {
		keys = append(keys, k)
	}

	return keys
}

// Actor returns the act claim when the token represents an impersonated
// session. A present act value that is not an object is ignored.
func (c *Claims) Actor() (Actor, bool) {
	v, ok := c.Get("act")
	if !ok {
		return Actor{}, false
	}

	act, ok := v.(map[string]any)
	if !ok {
		return Actor{}, false
	}

	var actor Actor

	if sub, ok := act["sub"].(string); ok {
		actor.Subject = sub
	}

	if reason, ok := act["reason"].(string); ok {
		actor.Reason = &reason
	}

	return actor, true
}
