package utils // package utils provides helper functions for token creation and validation

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens
)

// Token type discriminator carried in the "type" claim. Access and refresh
// tokens are both HS256 JWTs signed with the same secret; the claim is what
// keeps them from being interchangeable.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// ErrWrongTokenType is returned by ParseToken when the token is valid but
// its "type" claim does not match the expected kind (e.g. an access token
// presented to the refresh endpoint).
var ErrWrongTokenType = errors.New("wrong token type")

// ErrInvalidToken is returned for malformed, tampered or expired tokens and
// for tokens missing required claims.
var ErrInvalidToken = errors.New("invalid token")

// SignedToken is a serialized JWT along with its expiry. Exp is stored as
// UTC so callers can report it without further conversion.
type SignedToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// TokenClaims is the decoded, validated claim set of either token kind.
// Username is only present on access tokens.
type TokenClaims struct {
	UserID   uint64 // user_id claim
	Email    string // sub claim
	Username string // username claim (access tokens only)
	Type     string // type claim: "access" or "refresh"
}

// NewAccessToken builds and signs a short-lived HS256 JWT. Claims: sub
// (email), user_id, username, type=access, exp and iat.
func NewAccessToken(secret string, userID uint64, email, username string, ttlMin int) (SignedToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":      email,
		"user_id":  userID,
		"username": username,
		"type":     TokenTypeAccess,
		"exp":      exp.Unix(),
		"iat":      time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SignedToken{}, err
	}
	return SignedToken{Token: signed, Exp: exp}, nil
}

// NewRefreshToken builds and signs a long-lived HS256 JWT used solely to
// mint new access tokens. Claims: sub (email), user_id, type=refresh, exp
// and iat. There is no server-side refresh token store; possession of a
// valid refresh token is the whole credential.
func NewRefreshToken(secret string, userID uint64, email string, ttlDays int) (SignedToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlDays) * 24 * time.Hour)
	claims := jwt.MapClaims{
		"sub":     email,
		"user_id": userID,
		"type":    TokenTypeRefresh,
		"exp":     exp.Unix(),
		"iat":     time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SignedToken{}, err
	}
	return SignedToken{Token: signed, Exp: exp}, nil
}

// ParseToken verifies signature and expiry of a raw JWT and enforces the
// expected "type" claim. Only HMAC signing methods are accepted; tokens
// signed with anything else are rejected before the claims are trusted.
func ParseToken(secret, raw, wantType string) (TokenClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return TokenClaims{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return TokenClaims{}, ErrInvalidToken
	}
	typ, _ := claims["type"].(string)
	if typ != wantType {
		return TokenClaims{}, ErrWrongTokenType
	}
	out := TokenClaims{Type: typ}
	if sub, ok := claims["sub"].(string); ok {
		out.Email = sub
	}
	// JWT numeric values are decoded as float64.
	if id, ok := claims["user_id"].(float64); ok {
		out.UserID = uint64(id)
	}
	if name, ok := claims["username"].(string); ok {
		out.Username = name
	}
	if out.Email == "" || out.UserID == 0 {
		return TokenClaims{}, ErrInvalidToken
	}
	return out, nil
}
