package auth

import (
	"slices"

	"github.com/lestrrat-go/jwx/v2/jwt"
)

// Claims holds the verified token fields this service acts on.
type Claims struct {
	Subject string
	Issuer  string
	Roles   []string
}

// HasAnyRole reports whether the claims carry at least one of roles.
func (c *Claims) HasAnyRole(roles []string) bool {
	for _, r := range roles {
		if slices.Contains(c.Roles, r) {
			return true
		}
	}
	return false
}

// extractClaims reads issuer, subject and realm_access.roles from token.
func extractClaims(token jwt.Token) *Claims {
	claims := &Claims{
		Subject: token.Subject(),
		Issuer:  token.Issuer(),
	}

	v, ok := token.Get("realm_access")
	if !ok {
		return claims
	}
	realm, ok := v.(map[string]any)
	if !ok {
		return claims
	}
	switch roles := realm["roles"].(type) {
	case []any:
		for _, r := range roles {
			if s, ok := r.(string); ok {
				claims.Roles = append(claims.Roles, s)
			}
		}
	case []string:
		claims.Roles = append(claims.Roles, roles...)
	}
	return claims
}
