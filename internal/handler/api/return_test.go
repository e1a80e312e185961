//go:build unit

package api_test

import (
	"errors"
	"net/http"
	stdhttptest "net/http/httptest"
	"testing"

	"github.com/maysqunaibi/strollers-mvp/internal/domain/order"
	"github.com/maysqunaibi/strollers-mvp/internal/handler/api"
	resdto "github.com/maysqunaibi/strollers-mvp/internal/handler/dto/response"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/cookie"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/errs"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/commands"
	"github.com/maysqunaibi/strollers-mvp/tests/common/httptest"
	commandsmock "github.com/maysqunaibi/strollers-mvp/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReturnHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	mockCtrl  *gomock.Controller
	mockCmds  *commandsmock.MockReturnCommands
	sessionID string
}

func (s *ReturnHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCmds = commandsmock.NewMockReturnCommands(s.mockCtrl)
	s.sessionID = uuid.NewString()

	handler := api.NewReturnHandler(s.mockCmds)
	s.router.GET("/pay/return", handler.Return)
}

func (s *ReturnHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReturnHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReturnHandlerTestSuite))
}

func (s *ReturnHandlerTestSuite) sessionCookie() []*http.Cookie {
	return []*http.Cookie{{Name: cookie.SessionCookieName, Value: s.sessionID}}
}

func (s *ReturnHandlerTestSuite) perform(path string, cookies []*http.Cookie) *stdhttptest.ResponseRecorder {
	return httptest.PerformRequestWithCookies(s.T(), s.router, http.MethodGet, path, nil, cookies, "")
}

func (s *ReturnHandlerTestSuite) TestReturn() {
	paymentID := "pay_" + uuid.NewString()
	url := "/pay/return?id=" + paymentID

	s.Run("success: renders ok state with unlock outcome", func() {
		s.mockCmds.EXPECT().CompleteReturn(gomock.Any(), s.sessionID, paymentID).
			Return(&commands.ReturnResult{
				State: commands.ReturnStateOK,
				Outcome: &commands.UnlockOutcome{
					Code:        commands.CodeOK,
					VendorCode:  "00000",
					VendorMsg:   "OK",
					OrderID:     uuid.New(),
					OrderStatus: order.StatusInUse,
				},
			}, nil).Times(1)

		rec := s.perform(url, s.sessionCookie())

		var response resdto.ReturnResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(commands.ReturnStateOK, response.State)
		s.Require().NotNil(response.Unlock)
		s.Equal("00000", response.Unlock.Data.Vendor.Code)
		s.Equal(order.StatusInUse.String(), response.Unlock.Data.OrderStatus)
	})

	s.Run("success: accepts payment_id as the parameter name", func() {
		s.mockCmds.EXPECT().CompleteReturn(gomock.Any(), s.sessionID, paymentID).
			Return(&commands.ReturnResult{State: commands.ReturnStateOK}, nil).Times(1)

		rec := s.perform("/pay/return?payment_id="+paymentID, s.sessionCookie())

		var response resdto.ReturnResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(commands.ReturnStateOK, response.State)
	})

	s.Run("error state: missing payment id still renders 200", func() {
		rec := s.perform("/pay/return", s.sessionCookie())

		var response resdto.ReturnResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(commands.ReturnStateError, response.State)
		s.Equal("Missing payment id", response.Message)
	})

	s.Run("error state: no session cookie renders missing selection", func() {
		rec := s.perform(url, nil)

		var response resdto.ReturnResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(commands.ReturnStateError, response.State)
		s.Equal("Missing selection data", response.Message)
	})

	s.Run("error state: business failure from the orchestrator", func() {
		s.mockCmds.EXPECT().CompleteReturn(gomock.Any(), s.sessionID, paymentID).
			Return(&commands.ReturnResult{
				State:   commands.ReturnStateError,
				Message: "cart jammed",
				Outcome: &commands.UnlockOutcome{
					Code:       commands.CodeOK,
					VendorCode: "50001",
					VendorMsg:  "cart jammed",
				},
			}, nil).Times(1)

		rec := s.perform(url, s.sessionCookie())

		var response resdto.ReturnResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(commands.ReturnStateError, response.State)
		s.Equal("cart jammed", response.Message)
	})

	s.Run("error: 502 Bad Gateway when the provider is unreachable", func() {
		s.mockCmds.EXPECT().CompleteReturn(gomock.Any(), s.sessionID, paymentID).
			Return(nil, errs.Mark(errors.New("dial timeout"), commands.ErrProviderUnavailable)).Times(1)

		rec := s.perform(url, s.sessionCookie())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "Payment provider unavailable")
	})

	s.Run("error: 502 Bad Gateway when the vendor is unreachable", func() {
		s.mockCmds.EXPECT().CompleteReturn(gomock.Any(), s.sessionID, paymentID).
			Return(nil, errs.Mark(errors.New("connection reset"), commands.ErrVendorUnavailable)).Times(1)

		rec := s.perform(url, s.sessionCookie())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadGateway, "Unlock service unavailable")
	})

	s.Run("error: 500 Internal Server Error on unexpected failures", func() {
		s.mockCmds.EXPECT().CompleteReturn(gomock.Any(), s.sessionID, paymentID).
			Return(nil, errors.New("database down")).Times(1)

		rec := s.perform(url, s.sessionCookie())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
