// Package opstoken issues and validates short-lived bearer tokens for human
// operators (approvers, safety officers) calling the mutating endpoints.
// The engine does not verify who a person is; it only binds the token subject
// to the decisions that operator records.
package opstoken

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	dErrors "aegis/pkg/domain-errors"
)

// Claims carries the operator identity inside the signed token.
type Claims struct {
	Operator string `json:"operator"`
	jwt.RegisteredClaims
}

// Service handles operator token creation and validation.
type Service struct {
	signingKey []byte
	issuer     string
	tokenTTL   time.Duration
}

func NewService(signingKey string, issuer string, tokenTTL time.Duration) *Service {
	return &Service{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		tokenTTL:   tokenTTL,
	}
}

// Generate mints a signed token for the named operator.
func (s *Service) Generate(operator string, now time.Time) (string, error) {
	if operator == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "operator cannot be empty")
	}
	claims := Claims{
		Operator: operator,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   operator,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "could not sign operator token")
	}
	return signed, nil
}

// Validate parses and verifies a token string, returning the operator identity.
func (s *Service) Validate(tokenString string) (string, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "unexpected signing method")
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return "", dErrors.New(dErrors.CodeUnauthorized, "invalid or expired operator token")
	}
	if claims.Operator == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "token missing operator claim")
	}
	return claims.Operator, nil
}
