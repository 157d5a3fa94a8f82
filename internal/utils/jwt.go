package utils // package utils provides helper functions for token creation and hashing

import (
    "errors"
    "time" // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens

    "github.com/fmbfi/scholar-portal/internal/model"
)

// SessionToken represents a signed HS256 session token along with its
// expiry. The Token field contains the serialized JWT string. Exp stores
// the expiration timestamp as a time.Time. The portal issues exactly one
// token per sign-in; it is carried either in the Authorization header or
// in the session cookie and is re-verified on every request.
type SessionToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// SessionClaims is the read-only projection of a verified session token.
// It carries the identity snapshot taken at issuance: subject (scholar ID),
// display name, email and role. The stored credential never appears in a
// token. The role is a snapshot; it is not refreshed until the user
// re-authenticates or the token is refreshed against the store.
type SessionClaims struct {
    ScholarID uint64
    Username  string
    Email     string
    Role      string
    ExpiresAt time.Time
}

// ErrInvalidToken is returned by ParseSessionToken for any token that does
// not verify: bad signature, wrong algorithm, malformed or expired. The
// caller cannot (and should not) distinguish between those cases.
var ErrInvalidToken = errors.New("invalid session token")

// NewSessionToken builds and signs an HS256 JWT for a user. It takes the
// signing secret, the user record and a TTL. The expiration is always
// issuance time plus the TTL, regardless of how the user authenticated.
// The JWT includes the subject (sub), display name (name), email, role,
// expiration (exp) and issued at (iat) claims.
func NewSessionToken(secret string, u model.User, ttl time.Duration) (SessionToken, error) {
    now := time.Now().UTC()
    exp := now.Add(ttl)
    claims := jwt.MapClaims{
        "sub":   u.ScholarID,
        "name":  u.Username,
        "email": u.Email,
        "role":  model.DefaultRole(u.Role),
        "exp":   exp.Unix(),
        "iat":   now.Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies the signature and expiry of a raw token string
// and projects its claims into a SessionClaims view. Any verification
// failure yields ErrInvalidToken.
func ParseSessionToken(secret, raw string) (SessionClaims, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        // Reject tokens signed with anything but HMAC; the portal only
        // ever issues HS256.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return SessionClaims{}, ErrInvalidToken
    }
    mc, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return SessionClaims{}, ErrInvalidToken
    }

    var c SessionClaims
    // Numeric claims decode as float64 from JSON.
    if sub, ok := mc["sub"].(float64); ok {
        c.ScholarID = uint64(sub)
    }
    if name, ok := mc["name"].(string); ok {
        c.Username = name
    }
    if email, ok := mc["email"].(string); ok {
        c.Email = email
    }
    if role, ok := mc["role"].(string); ok {
        // Kept verbatim: RoleLanding routes anything outside the known
        // set (including a missing claim) to the application root.
        c.Role = role
    }
    if exp, ok := mc["exp"].(float64); ok {
        c.ExpiresAt = time.Unix(int64(exp), 0).UTC()
    }
    return c, nil
}

// RoleLanding returns the landing route for a role claim: admins land on
// the admin dashboard, users on the student dashboard, and anything
// unrecognized falls back to the application root.
func RoleLanding(role string) string {
    switch role {
    case model.RoleAdmin:
        return "/admin/dashboard"
    case model.RoleUser:
        return "/user/dashboard"
    default:
        return "/"
    }
}
