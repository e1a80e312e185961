//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/maysqunaibi/strollers-mvp/internal/domain/operator"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/clock"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/errs"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/jwt"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/password"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/commands"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/queries"
	commandsmock "github.com/maysqunaibi/strollers-mvp/tests/mock/commands"
	queriesmock "github.com/maysqunaibi/strollers-mvp/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testPassword = "correct-horse-battery"

type AuthCommandsTestSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	operators  *commandsmock.MockOperatorRepository
	readStore  *queriesmock.MockOperatorReadStore
	jwtService jwt.Service
	clock      *clock.MockClock
	cmds       commands.AuthCommands

	operatorID   uuid.UUID
	view         *queries.AuthorizedOperatorView
	passwordHash string
}

func (s *AuthCommandsTestSuite) SetupSuite() {
	hash, err := password.HashPassword(testPassword)
	s.Require().NoError(err)
	s.passwordHash = hash
}

func (s *AuthCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.operators = commandsmock.NewMockOperatorRepository(s.ctrl)
	s.readStore = queriesmock.NewMockOperatorReadStore(s.ctrl)
	s.jwtService = jwt.NewService("test-secret", 15*time.Minute, 168*time.Hour)
	s.clock = clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.cmds = commands.NewAuthCommands(s.operators, s.readStore, s.jwtService, s.clock)

	s.operatorID = uuid.New()
	s.view = &queries.AuthorizedOperatorView{
		ID:       s.operatorID,
		Email:    "staff@example.com",
		Role:     operator.RoleStaff.String(),
		IsActive: true,
	}
}

func (s *AuthCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAuthCommandsSuite(t *testing.T) {
	suite.Run(t, new(AuthCommandsTestSuite))
}

func (s *AuthCommandsTestSuite) credentials(pw string) operator.Credentials {
	creds, err := operator.NewCredentials(s.view.Email, pw)
	s.Require().NoError(err)
	return creds
}

func (s *AuthCommandsTestSuite) TestLogin() {
	s.Run("success: issues access and refresh tokens", func() {
		s.readStore.EXPECT().FindByEmail(gomock.Any(), s.view.Email).
			Return(s.view, s.passwordHash, nil)
		s.operators.EXPECT().UpdateLastLogin(gomock.Any(), s.operatorID, s.clock.Now()).Return(nil)

		result, err := s.cmds.Login(context.Background(), s.credentials(testPassword))
		s.Require().NoError(err)
		s.Equal(s.operatorID, result.OperatorID)

		claims, err := s.jwtService.ValidateToken(result.TokenPair.AccessToken)
		s.Require().NoError(err)
		s.Equal(jwt.TokenTypeAccess, claims.TokenType)
		s.Equal(s.operatorID, claims.OperatorID)
		s.Equal(operator.RoleStaff.String(), claims.Role)

		claims, err = s.jwtService.ValidateToken(result.TokenPair.RefreshToken)
		s.Require().NoError(err)
		s.Equal(jwt.TokenTypeRefresh, claims.TokenType)
	})

	s.Run("last-login update failure does not fail the login", func() {
		s.readStore.EXPECT().FindByEmail(gomock.Any(), s.view.Email).
			Return(s.view, s.passwordHash, nil)
		s.operators.EXPECT().UpdateLastLogin(gomock.Any(), s.operatorID, gomock.Any()).
			Return(commands.ErrDatabaseOperationFailed)

		result, err := s.cmds.Login(context.Background(), s.credentials(testPassword))
		s.Require().NoError(err)
		s.NotNil(result.TokenPair)
	})

	s.Run("error: wrong password", func() {
		s.readStore.EXPECT().FindByEmail(gomock.Any(), s.view.Email).
			Return(s.view, s.passwordHash, nil)

		result, err := s.cmds.Login(context.Background(), s.credentials("wrong-password-99"))
		s.Require().ErrorIs(err, commands.ErrInvalidCredentials)
		s.Nil(result)
	})

	s.Run("error: unknown operator", func() {
		s.readStore.EXPECT().FindByEmail(gomock.Any(), s.view.Email).
			Return(nil, "", queries.ErrOperatorNotFound)

		_, err := s.cmds.Login(context.Background(), s.credentials(testPassword))
		s.ErrorIs(err, commands.ErrOperatorNotFound)
	})

	s.Run("error: inactive operator", func() {
		inactive := *s.view
		inactive.IsActive = false
		s.readStore.EXPECT().FindByEmail(gomock.Any(), s.view.Email).
			Return(&inactive, s.passwordHash, nil)

		_, err := s.cmds.Login(context.Background(), s.credentials(testPassword))
		s.ErrorIs(err, commands.ErrOperatorInactive)
	})
}

func (s *AuthCommandsTestSuite) TestRefreshToken() {
	refresh := func() string {
		token, err := s.jwtService.GenerateRefreshToken(s.operatorID, operator.RoleStaff)
		s.Require().NoError(err)
		return token
	}

	s.Run("success: rotates the pair", func() {
		s.readStore.EXPECT().FindByID(gomock.Any(), s.operatorID).Return(s.view, nil)

		pair, err := s.cmds.RefreshToken(context.Background(), refresh())
		s.Require().NoError(err)

		claims, err := s.jwtService.ValidateToken(pair.AccessToken)
		s.Require().NoError(err)
		s.Equal(jwt.TokenTypeAccess, claims.TokenType)
		s.Equal(s.operatorID, claims.OperatorID)
	})

	s.Run("error: access token rejected as refresh token", func() {
		access, err := s.jwtService.GenerateAccessToken(s.operatorID, operator.RoleStaff)
		s.Require().NoError(err)

		_, err = s.cmds.RefreshToken(context.Background(), access)
		s.True(errs.Is(err, commands.ErrTokenValidation))
	})

	s.Run("error: garbage token", func() {
		_, err := s.cmds.RefreshToken(context.Background(), "not-a-jwt")
		s.True(errs.Is(err, commands.ErrTokenValidation))
	})

	s.Run("error: operator deleted since issuance", func() {
		s.readStore.EXPECT().FindByID(gomock.Any(), s.operatorID).
			Return(nil, queries.ErrOperatorNotFound)

		_, err := s.cmds.RefreshToken(context.Background(), refresh())
		s.ErrorIs(err, commands.ErrOperatorNotFound)
	})

	s.Run("error: operator deactivated since issuance", func() {
		inactive := *s.view
		inactive.IsActive = false
		s.readStore.EXPECT().FindByID(gomock.Any(), s.operatorID).Return(&inactive, nil)

		_, err := s.cmds.RefreshToken(context.Background(), refresh())
		s.ErrorIs(err, commands.ErrOperatorInactive)
	})
}
