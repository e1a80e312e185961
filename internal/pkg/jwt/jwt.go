package jwt

import (
	"errors"
	"time"

	"github.com/maysqunaibi/strollers-mvp/internal/domain/operator"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type Claims struct {
	OperatorID uuid.UUID `json:"operator_id"`
	Role       string    `json:"role"`
	TokenType  string    `json:"token_type"`
	jwt.RegisteredClaims
}

type Service interface {
	GenerateAccessToken(operatorID uuid.UUID, role operator.Role) (string, error)
	GenerateRefreshToken(operatorID uuid.UUID, role operator.Role) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type serviceImpl struct {
	secretKey       []byte
	accessDuration  time.Duration
	refreshDuration time.Duration
}

func NewService(secretKey string, accessDuration, refreshDuration time.Duration) Service {
	return &serviceImpl{
		secretKey:       []byte(secretKey),
		accessDuration:  accessDuration,
		refreshDuration: refreshDuration,
	}
}

func (s *serviceImpl) GenerateAccessToken(operatorID uuid.UUID, role operator.Role) (string, error) {
	return s.generate(operatorID, role, TokenTypeAccess, s.accessDuration)
}

func (s *serviceImpl) GenerateRefreshToken(operatorID uuid.UUID, role operator.Role) (string, error) {
	return s.generate(operatorID, role, TokenTypeRefresh, s.refreshDuration)
}

func (s *serviceImpl) generate(operatorID uuid.UUID, role operator.Role, tokenType string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		OperatorID: operatorID,
		Role:       role.String(),
		TokenType:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

func (s *serviceImpl) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
