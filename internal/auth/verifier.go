// Package auth verifies bearer tokens issued by the parks SSO realm.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwk"
	"github.com/lestrrat-go/jwx/v2/jws"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

// RoleSysadmin is the realm role granting admin visibility.
const RoleSysadmin = "sysadmin"

// RequiredRoles lists the roles accepted as admin. Holding any one suffices.
var RequiredRoles = []string{RoleSysadmin}

// DefaultCacheTTL is how long a fetched key set is reused.
const DefaultCacheTTL = 10 * time.Minute

const bearerPrefix = "Bearer "

// Error types for token verification.
var (
	ErrMissingBearer  = errors.New("authorization header is not a bearer token")
	ErrKeySet         = errors.New("signing key set unavailable")
	ErrInvalidToken   = errors.New("invalid token")
	ErrIssuerMismatch = errors.New("token issuer mismatch")
	ErrRoleMismatch   = errors.New("token lacks required role")
)

// Verifier checks bearer tokens against a remote JWKS and a trusted issuer.
type Verifier struct {
	issuer string
	roles  []string
	keys   *keySetCache
}

// NewVerifier creates a Verifier for tokens from issuer, signed by keys
// published at jwksURL. A zero cacheTTL uses DefaultCacheTTL.
func NewVerifier(jwksURL, issuer string, cacheTTL time.Duration, fetcher KeySetFetcher) *Verifier {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	if fetcher == nil {
		fetcher = NewHTTPKeySetFetcher(nil)
	}
	return &Verifier{
		issuer: issuer,
		roles:  RequiredRoles,
		keys:   newKeySetCache(jwksURL, cacheTTL, fetcher),
	}
}

// Verify validates an Authorization header value of the form
// "Bearer <token>" and returns the token claims when the signature, issuer
// and role checks all pass.
func (v *Verifier) Verify(ctx context.Context, header string) (*Claims, error) {
	raw, ok := strings.CutPrefix(header, bearerPrefix)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return nil, ErrMissingBearer
	}

	kid, err := keyID(raw)
	if err != nil {
		return nil, err
	}

	set, err := v.keySetFor(ctx, kid)
	if err != nil {
		return nil, err
	}

	token, err := jwt.Parse([]byte(raw),
		jwt.WithKeySet(set, jws.WithInferAlgorithmFromKey(true)),
		jwt.WithValidate(true),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims := extractClaims(token)
	if claims.Issuer != v.issuer {
		return nil, fmt.Errorf("%w: got %q", ErrIssuerMismatch, claims.Issuer)
	}
	if !claims.HasAnyRole(v.roles) {
		return nil, ErrRoleMismatch
	}
	return claims, nil
}

// keySetFor returns a key set containing kid, refreshing once if the cached
// set predates a key rotation.
func (v *Verifier) keySetFor(ctx context.Context, kid string) (jwk.Set, error) {
	set, err := v.keys.get(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeySet, err)
	}
	if _, ok := set.LookupKeyID(kid); ok {
		return set, nil
	}

	set, err = v.keys.refresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeySet, err)
	}
	if _, ok := set.LookupKeyID(kid); !ok {
		return nil, fmt.Errorf("%w: unknown key id %q", ErrKeySet, kid)
	}
	return set, nil
}

// keyID decodes the protected header of a compact JWS without verifying it.
func keyID(raw string) (string, error) {
	msg, err := jws.Parse([]byte(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	sigs := msg.Signatures()
	if len(sigs) == 0 {
		return "", fmt.Errorf("%w: no signatures", ErrInvalidToken)
	}
	kid := sigs[0].ProtectedHeaders().KeyID()
	if kid == "" {
		return "", fmt.Errorf("%w: missing kid header", ErrInvalidToken)
	}
	return kid, nil
}
