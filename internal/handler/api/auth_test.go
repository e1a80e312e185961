//go:build unit

package api_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/maysqunaibi/strollers-mvp/internal/handler/api"
	resdto "github.com/maysqunaibi/strollers-mvp/internal/handler/dto/response"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/config"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/cookie"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/commands"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/queries"
	"github.com/maysqunaibi/strollers-mvp/tests/common/httptest"
	"github.com/maysqunaibi/strollers-mvp/tests/common/testutil"
	commandsmock "github.com/maysqunaibi/strollers-mvp/tests/mock/commands"
	queriesmock "github.com/maysqunaibi/strollers-mvp/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockCmds    *commandsmock.MockAuthCommands
	mockQueries *queriesmock.MockOperatorQueries
	operatorID  uuid.UUID
}

func (s *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCmds = commandsmock.NewMockAuthCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOperatorQueries(s.mockCtrl)
	s.operatorID = uuid.New()

	handler := api.NewAuthHandler(s.mockCmds, s.mockQueries, config.NewTestConfig())
	s.router.POST("/auth/login", handler.Login)
	s.router.POST("/auth/refresh", handler.Refresh)
	s.router.POST("/auth/logout", handler.Logout)
	s.router.GET("/auth/me", func(c *gin.Context) {
		// stand-in for the auth middleware
		if c.GetHeader("Authorization") != "" {
			c.Set("operator_id", s.operatorID)
		}
		handler.Me(c)
	})
}

func (s *AuthHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func loginRequestBody() map[string]any {
	return map[string]any{
		"email":    "staff@example.com",
		"password": "password123",
	}
}

func (s *AuthHandlerTestSuite) TestLogin() {
	url := "/auth/login"

	s.Run("success: returns 200 OK with tokens and cookies", func() {
		s.mockCmds.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(&commands.LoginResult{
				OperatorID: s.operatorID,
				TokenPair:  &commands.TokenPair{AccessToken: "access-jwt", RefreshToken: "refresh-jwt"},
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, loginRequestBody(), "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("access-jwt", response.AccessToken)
		s.Equal("refresh-jwt", response.RefreshToken)

		access := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
		s.Require().NotNil(access)
		s.Equal("access-jwt", access.Value)
		s.True(access.HttpOnly)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing email", mutate: testutil.Field("email", nil)},
			{name: "invalid email", mutate: testutil.Field("email", "not-an-email")},
			{name: "missing password", mutate: testutil.Field("password", nil)},
			{name: "short password", mutate: testutil.Field("password", strings.Repeat("a", 7))},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := loginRequestBody()
				tc.mutate(body)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: 401 Unauthorized for wrong credentials", func() {
		s.mockCmds.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrInvalidCredentials).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, loginRequestBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid email or password")
	})

	s.Run("error: 401 Unauthorized for unknown operator", func() {
		s.mockCmds.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrOperatorNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, loginRequestBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid email or password")
	})

	s.Run("error: 403 Forbidden for an inactive account", func() {
		s.mockCmds.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(nil, commands.ErrOperatorInactive).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, loginRequestBody(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Account is inactive")
	})
}

func (s *AuthHandlerTestSuite) TestRefresh() {
	url := "/auth/refresh"

	s.Run("success: refresh token from cookie", func() {
		s.mockCmds.EXPECT().RefreshToken(gomock.Any(), "refresh-jwt").
			Return(&commands.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil).Times(1)

		cookies := []*http.Cookie{{Name: cookie.RefreshTokenCookieName, Value: "refresh-jwt"}}
		rec := httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodPost, url, nil, cookies, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("new-access", response.AccessToken)
	})

	s.Run("success: refresh token from body when no cookie", func() {
		s.mockCmds.EXPECT().RefreshToken(gomock.Any(), "refresh-jwt").
			Return(&commands.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil).Times(1)

		body := map[string]any{"refresh_token": "refresh-jwt"}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")

		var response resdto.LoginResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
	})

	s.Run("error: 401 Unauthorized without any token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Refresh token required")
	})

	s.Run("error: 401 Unauthorized for an invalid token", func() {
		s.mockCmds.EXPECT().RefreshToken(gomock.Any(), "bad-token").
			Return(nil, commands.ErrTokenValidation).Times(1)

		body := map[string]any{"refresh_token": "bad-token"}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Invalid or expired refresh token")
	})
}

func (s *AuthHandlerTestSuite) TestLogout() {
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/auth/logout", nil, "")
	s.Equal(http.StatusNoContent, rec.Code)

	access := httptest.ExtractCookie(rec, cookie.AccessTokenCookieName)
	s.Require().NotNil(access)
	s.Empty(access.Value)
}

func (s *AuthHandlerTestSuite) TestMe() {
	s.Run("success: returns the operator profile", func() {
		now := time.Now()
		view := &queries.AuthorizedOperatorView{
			ID:          s.operatorID,
			Email:       "staff@example.com",
			Role:        "staff",
			IsActive:    true,
			LastLoginAt: &now,
		}
		s.mockQueries.EXPECT().GetCurrentOperator(gomock.Any(), s.operatorID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "some-token")

		var response queries.AuthorizedOperatorView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.Email, response.Email)
		s.Equal(view.Role, response.Role)
	})

	s.Run("error: 401 Unauthorized without authentication", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: 404 Not Found when operator row is gone", func() {
		s.mockQueries.EXPECT().GetCurrentOperator(gomock.Any(), s.operatorID).
			Return(nil, queries.ErrOperatorNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/auth/me", nil, "some-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Operator not found")
	})
}
