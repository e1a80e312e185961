package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/maysqunaibi/strollers-mvp/internal/domain/operator"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/clock"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/errs"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/jwt"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/password"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/queries"
)

var (
	ErrOperatorNotFound     = errs.New("operator not found")
	ErrInvalidCredentials   = errs.New("invalid credentials")
	ErrOperatorInactive     = errs.New("operator inactive")
	ErrAuthenticationFailed = errs.New("authentication failed")
	ErrTokenGeneration      = errs.New("token generation failed")
	ErrTokenValidation      = errs.New("token validation failed")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type LoginResult struct {
	OperatorID uuid.UUID
	TokenPair  *TokenPair
}

type AuthCommands interface {
	Login(ctx context.Context, credentials operator.Credentials) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	operators  OperatorRepository
	readStore  queries.OperatorReadStore
	jwtService jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(
	operators OperatorRepository,
	readStore queries.OperatorReadStore,
	jwtService jwt.Service,
	clock clock.Clock,
) AuthCommands {
	return &authCommandsImpl{
		operators:  operators,
		readStore:  readStore,
		jwtService: jwtService,
		clock:      clock,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, credentials operator.Credentials) (*LoginResult, error) {
	operatorView, err := a.validateOperator(ctx, credentials)
	if err != nil {
		return nil, err
	}

	role, err := operator.NewRole(operatorView.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrAuthenticationFailed)
	}

	accessToken, err := a.jwtService.GenerateAccessToken(operatorView.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	refreshToken, err := a.jwtService.GenerateRefreshToken(operatorView.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	if updateErr := a.operators.UpdateLastLogin(ctx, operatorView.ID, a.clock.Now()); updateErr != nil {
		slog.Warn("failed to update last login", "operator_id", operatorView.ID, "error", updateErr.Error())
		// Continue without failing - this is not critical
	}

	return &LoginResult{
		OperatorID: operatorView.ID,
		TokenPair: &TokenPair{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	}, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenValidation
	}

	role, err := operator.NewRole(claims.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}

	// Validate operator still exists and is active
	operatorView, err := a.readStore.FindByID(ctx, claims.OperatorID)
	if err != nil || operatorView == nil {
		return nil, ErrOperatorNotFound
	}

	if !operatorView.IsActive {
		return nil, ErrOperatorInactive
	}

	accessToken, err := a.jwtService.GenerateAccessToken(claims.OperatorID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	newRefreshToken, err := a.jwtService.GenerateRefreshToken(claims.OperatorID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

func (a *authCommandsImpl) validateOperator(ctx context.Context, credentials operator.Credentials) (*queries.AuthorizedOperatorView, error) {
	operatorView, hashedPassword, err := a.readStore.FindByEmail(ctx, credentials.Email().Value())
	if err != nil || operatorView == nil {
		return nil, ErrOperatorNotFound
	}

	if !operatorView.IsActive {
		return nil, ErrOperatorInactive
	}

	if err := password.ComparePassword(hashedPassword, credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	return operatorView, nil
}
