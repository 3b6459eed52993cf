//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"testdrive-hub/internal/domain/user"
	"testdrive-hub/internal/pkg/config"
	"testdrive-hub/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func Seller(email, name string) user.Identity {
	return user.Identity{UserID: uuid.NewString(), Email: email, Name: name, Role: user.RoleSeller}
}

func Buyer(email, name string) user.Identity {
	return user.Identity{UserID: uuid.NewString(), Email: email, Name: name, Role: user.RoleBuyer}
}

func (h *JWTHelper) GenerateToken(t *testing.T, id user.Identity) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.AccessTokenDuration)
	require.NoError(t, err)
	token, err := jwt.NewService(h.cfg.Secret, duration).GenerateToken(id)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, id user.Identity) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, time.Millisecond).GenerateToken(id)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
