package auth

import (
	"errors"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformedToken marks tokens that cannot be parsed at all.
	ErrMalformedToken = errors.New("malformed token")
	// ErrInvalidToken marks tokens failing signature or expiry checks.
	ErrInvalidToken = errors.New("expired or invalid token")
)

// TokenManager validates bearer tokens issued by the People Service. The
// signing secret is loaded once at startup and shared read-only across
// requests.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager builds a new manager.
func NewTokenManager(secret string, ttlMinutes int) *TokenManager {
	if ttlMinutes <= 0 {
		ttlMinutes = 60
	}
	return &TokenManager{secret: []byte(secret), ttl: time.Duration(ttlMinutes) * time.Minute}
}

// Claims describes the JWT payload carried by People Service tokens.
type Claims struct {
	PersonID       string `json:"pessoaId"`
	DocumentNumber string `json:"numeroDocumento"`
	PersonType     string `json:"tipoPessoa"`
	Role           string `json:"cargo"`
	Profile        string `json:"perfil"`
	jwt.RegisteredClaims
}

// Decode parses and cryptographically verifies a token, producing the fully
// populated principal. Returns ErrMalformedToken when the token cannot be
// parsed, ErrInvalidToken when signature or expiry checks fail.
func (tm *TokenManager) Decode(tokenStr string) (*UserDetails, error) {
	claims, err := tm.parse(tokenStr)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return nil, ErrMalformedToken
		}
		return nil, ErrInvalidToken
	}
	details, err := NewUserDetails(
		claims.Subject,
		claims.PersonID,
		claims.DocumentNumber,
		claims.PersonType,
		claims.Role,
		claims.Profile,
	)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return details, nil
}

// IsStillValid re-confirms a previously decoded token is still acceptable for
// the given principal. Never returns an error; a token that fails any check is
// simply reported as invalid.
func (tm *TokenManager) IsStillValid(tokenStr string, details *UserDetails) bool {
	if details == nil {
		return false
	}
	claims, err := tm.parse(tokenStr)
	if err != nil {
		return false
	}
	if claims.Subject != details.Username {
		return false
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		return false
	}
	return true
}

// ExtractProfile reads the access profile claim from a raw token. Used by the
// authorization filter, which inspects tokens itself instead of trusting the
// authentication filter's principal.
func (tm *TokenManager) ExtractProfile(tokenStr string) (string, error) {
	claims, err := tm.parse(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.Profile, nil
}

// ExtractPersonID reads the person id claim from a raw token.
func (tm *TokenManager) ExtractPersonID(tokenStr string) (string, error) {
	claims, err := tm.parse(tokenStr)
	if err != nil {
		return "", err
	}
	return claims.PersonID, nil
}

// GenerateToken signs a token for the given principal. Issuance proper
// belongs to the People Service; this helper exists for local wiring and
// tests.
func (tm *TokenManager) GenerateToken(details *UserDetails) (string, time.Time, error) {
	expiresAt := time.Now().Add(tm.ttl)
	claims := &Claims{
		PersonID:       details.PersonID.String(),
		DocumentNumber: details.DocumentNumber,
		PersonType:     details.PersonType,
		Role:           details.Role,
		Profile:        details.Profile,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   details.Username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

func (tm *TokenManager) parse(tokenStr string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}
