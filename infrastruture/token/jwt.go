package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/dgrijalva/jwt-go"
)

// Token errors.
var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrWrongIssuer   = errors.New("token issued by another service")
	ErrSigningMethod = errors.New("unexpected signing method")
)

// JwtService signs and verifies HS256 session tokens.
// Implements i.Tokenizer.
type JwtService struct {
	secretKey string
	issuer    string
	now       func() time.Time
}

// NewJwtService creates a JWT service signing with secretKey and stamping issuer on every token.
func NewJwtService(secretKey, issuer string) i.Tokenizer {
	return &JwtService{
		secretKey: secretKey,
		issuer:    issuer,
		now:       time.Now,
	}
}

// Generate creates a JWT carrying claims. The registered exp, iat and iss
// claims are always set by the service and override caller values.
func (s *JwtService) Generate(claims map[string]interface{}, expTime time.Duration) (string, error) {
	now := s.now().UTC()
	jwtClaims := jwt.MapClaims{}
	for key, val := range claims {
		jwtClaims[key] = val
	}
	jwtClaims["exp"] = now.Add(expTime).Unix()
	jwtClaims["iat"] = now.Unix()
	jwtClaims["iss"] = s.issuer

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	return token.SignedString([]byte(s.secretKey))
}

// Decode parses and validates a JWT, returning its claims if the signature,
// expiry and issuer all check out.
func (s *JwtService) Decode(tokenString string) (map[string]interface{}, error) {
	token, err := jwt.Parse(tokenString, s.getSigningKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return nil, ErrWrongIssuer
	}
	return claims, nil
}

// getSigningKey returns the signing key for token validation.
func (s *JwtService) getSigningKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrSigningMethod
	}
	return []byte(s.secretKey), nil
}
