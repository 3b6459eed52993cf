package usecase

import (
	"testdrive-hub/internal/domain/user"
	"testdrive-hub/internal/pkg/jwt"
)

// TokenValidator provides token validation for middleware
type TokenValidator interface {
	ValidateToken(tokenString string) (user.Identity, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{
		jwtService: jwtService,
	}
}

func (t *tokenValidatorImpl) ValidateToken(tokenString string) (user.Identity, error) {
	claims, err := t.jwtService.ValidateToken(tokenString)
	if err != nil {
		return user.Identity{}, err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return user.Identity{}, err
	}
	if _, err := user.NewEmail(claims.Email); err != nil {
		return user.Identity{}, jwt.ErrInvalidToken
	}

	return user.Identity{
		UserID: claims.Subject,
		Email:  claims.Email,
		Name:   claims.Name,
		Role:   role,
	}, nil
}
