package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// BearerPrefix is the scheme prefix carried by the Authorization header
// on every authenticated request. The HTTP layer strips it before the
// raw token ever reaches the token service.
const BearerPrefix = "Bearer "

// Token wraps a JWT bearer token with convenience accessors for
// authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [jwt.RegisteredClaims] for standard claim access (subject, expiry).
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
// Tokens are stateless: nothing is tracked server-side, and validity is
// recomputed on every verification from the signature and expiry claim.
type Token struct {
	// Token is the underlying JWT used for signing and claim inspection.
	// Excluded from JSON serialization because only the compact string
	// form is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat, nbf, iss, aud, jti) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`
}

// Subject returns the username the token was issued for — the "sub"
// claim. An empty string means the claim is absent.
func (t *Token) Subject() string {
	return t.RegisteredClaims.Subject
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
