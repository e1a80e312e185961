//go:build unit

package authtest

import (
	"testing"
	"time"

	"github.com/maysqunaibi/strollers-mvp/internal/domain/operator"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/config"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, operatorID uuid.UUID, role operator.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, h.cfg.AccessDuration, h.cfg.RefreshDuration)
	token, err := service.GenerateAccessToken(operatorID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, operatorID uuid.UUID, role operator.Role) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret, 1*time.Millisecond, h.cfg.RefreshDuration)
	token, err := service.GenerateAccessToken(operatorID, role)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	return token
}
