package token

import (
	"errors"
	"fmt"

	"github.com/dsmarket/product-service/internal/core/domain"
	"github.com/dsmarket/product-service/internal/core/port"
	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

var _ port.TokenValidator = (*JWTValidator)(nil)

// JWTValidator checks bearer tokens issued by the auth service. Token
// issuing and user management live outside this service.
type JWTValidator struct {
	secret []byte
}

func NewJWTValidator(secret string) JWTValidator {
	return JWTValidator{[]byte(secret)}
}

func (v JWTValidator) Validate(tokenStr string) (domain.Caller, error) {
	const op = "JWTValidator.Validate"

	t, err := jwt.Parse(tokenStr,
		func(t *jwt.Token) (any, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
	)
	if err != nil || !t.Valid {
		return domain.Caller{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Caller{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	id, _ := claims["id"].(string)
	role, _ := claims["role"].(string)
	if id == "" {
		return domain.Caller{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return domain.Caller{ID: id, Role: role}, nil
}
