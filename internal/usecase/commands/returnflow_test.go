//go:build unit

package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/maysqunaibi/strollers-mvp/internal/domain/order"
	"github.com/maysqunaibi/strollers-mvp/internal/infra"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/clock"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/commands"
	"github.com/maysqunaibi/strollers-mvp/tests/common/builder"
	commandsmock "github.com/maysqunaibi/strollers-mvp/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CompleteReturnTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	intents  *commandsmock.MockIntentStore
	payments *commandsmock.MockPaymentCommands
	clock    *clock.MockClock
	cmds     commands.ReturnCommands
}

func (s *CompleteReturnTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.intents = commandsmock.NewMockIntentStore(s.ctrl)
	s.payments = commandsmock.NewMockPaymentCommands(s.ctrl)
	s.clock = clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.cmds = commands.NewReturnCommands(s.intents, s.payments, s.clock)
}

func (s *CompleteReturnTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestCompleteReturnSuite(t *testing.T) {
	suite.Run(t, new(CompleteReturnTestSuite))
}

func successOutcome() *commands.UnlockOutcome {
	return &commands.UnlockOutcome{
		Code:        commands.CodeOK,
		VendorCode:  "00000",
		VendorMsg:   "OK",
		OrderID:     uuid.New(),
		OrderStatus: order.StatusInUse,
	}
}

func (s *CompleteReturnTestSuite) TestSuccessClearsIntent() {
	sessionID := uuid.NewString()
	paymentID := "pay_" + uuid.NewString()
	intent := builder.NewIntentBuilder().MustBuild()

	s.intents.EXPECT().Get(gomock.Any(), sessionID).Return(intent, nil)
	s.payments.EXPECT().ConfirmAndUnlock(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params commands.ConfirmAndUnlockParams) (*commands.UnlockOutcome, error) {
			s.Equal(paymentID, params.PaymentID)
			s.Equal(intent.DeviceNo(), params.DeviceNo)
			s.Equal(intent.CartIndex(), params.CartIndex)
			s.Equal(intent.AmountHalalas(), params.AmountHalalas)
			return successOutcome(), nil
		})
	s.intents.EXPECT().Clear(gomock.Any(), sessionID).Return(nil)

	result, err := s.cmds.CompleteReturn(context.Background(), sessionID, paymentID)
	s.Require().NoError(err)
	s.Equal(commands.ReturnStateOK, result.State)
	s.Require().NotNil(result.Outcome)
	s.True(result.Outcome.Success())
}

func (s *CompleteReturnTestSuite) TestMissingIntentFailsFast() {
	sessionID := uuid.NewString()

	s.intents.EXPECT().Get(gomock.Any(), sessionID).
		Return(nil, infra.WrapRepoErr("intent not found", nil, infra.KindNotFound))
	// the orchestrator is never reached

	result, err := s.cmds.CompleteReturn(context.Background(), sessionID, "pay_x")
	s.Require().NoError(err)
	s.Equal(commands.ReturnStateError, result.State)
	s.Equal("Missing selection data", result.Message)
	s.Nil(result.Outcome)
}

func (s *CompleteReturnTestSuite) TestIntentStoreOutageIsAnError() {
	sessionID := uuid.NewString()
	outage := infra.WrapRepoErr("redis down", errors.New("connection refused"), infra.KindUnavailable)

	s.intents.EXPECT().Get(gomock.Any(), sessionID).Return(nil, outage)

	result, err := s.cmds.CompleteReturn(context.Background(), sessionID, "pay_x")
	s.Require().Error(err)
	s.Nil(result)
}

func (s *CompleteReturnTestSuite) TestFailureKeepsIntentAndAllowsRetry() {
	sessionID := uuid.NewString()
	paymentID := "pay_" + uuid.NewString()
	intent := builder.NewIntentBuilder().MustBuild()

	failed := &commands.UnlockOutcome{
		Code:        commands.CodeOK,
		VendorCode:  "50001",
		VendorMsg:   "cart jammed",
		OrderStatus: order.StatusUnlockFailed,
	}

	s.intents.EXPECT().Get(gomock.Any(), sessionID).Return(intent, nil).Times(2)
	first := s.payments.EXPECT().ConfirmAndUnlock(gomock.Any(), gomock.Any()).Return(failed, nil)
	s.payments.EXPECT().ConfirmAndUnlock(gomock.Any(), gomock.Any()).Return(successOutcome(), nil).After(first)
	s.intents.EXPECT().Clear(gomock.Any(), sessionID).Return(nil)

	result, err := s.cmds.CompleteReturn(context.Background(), sessionID, paymentID)
	s.Require().NoError(err)
	s.Equal(commands.ReturnStateError, result.State)
	s.Equal("cart jammed", result.Message)

	// the failed result was forgotten, so a retry executes again
	result, err = s.cmds.CompleteReturn(context.Background(), sessionID, paymentID)
	s.Require().NoError(err)
	s.Equal(commands.ReturnStateOK, result.State)
}

func (s *CompleteReturnTestSuite) TestOrchestratorErrorIsForgotten() {
	sessionID := uuid.NewString()
	paymentID := "pay_" + uuid.NewString()
	intent := builder.NewIntentBuilder().MustBuild()
	boom := errors.New("database down")

	s.intents.EXPECT().Get(gomock.Any(), sessionID).Return(intent, nil).Times(2)
	first := s.payments.EXPECT().ConfirmAndUnlock(gomock.Any(), gomock.Any()).Return(nil, boom)
	s.payments.EXPECT().ConfirmAndUnlock(gomock.Any(), gomock.Any()).Return(successOutcome(), nil).After(first)
	s.intents.EXPECT().Clear(gomock.Any(), sessionID).Return(nil)

	_, err := s.cmds.CompleteReturn(context.Background(), sessionID, paymentID)
	s.Require().ErrorIs(err, boom)

	result, err := s.cmds.CompleteReturn(context.Background(), sessionID, paymentID)
	s.Require().NoError(err)
	s.Equal(commands.ReturnStateOK, result.State)
}

func (s *CompleteReturnTestSuite) TestClearFailureStillReportsSuccess() {
	sessionID := uuid.NewString()
	intent := builder.NewIntentBuilder().MustBuild()

	s.intents.EXPECT().Get(gomock.Any(), sessionID).Return(intent, nil)
	s.payments.EXPECT().ConfirmAndUnlock(gomock.Any(), gomock.Any()).Return(successOutcome(), nil)
	s.intents.EXPECT().Clear(gomock.Any(), sessionID).Return(errors.New("redis down"))

	result, err := s.cmds.CompleteReturn(context.Background(), sessionID, "pay_x")
	s.Require().NoError(err)
	s.Equal(commands.ReturnStateOK, result.State)
}

func (s *CompleteReturnTestSuite) TestMemoizedSuccessIsEvictedAfterRetention() {
	sessionID := uuid.NewString()
	paymentID := "pay_" + uuid.NewString()
	intent := builder.NewIntentBuilder().MustBuild()

	s.intents.EXPECT().Get(gomock.Any(), sessionID).Return(intent, nil).Times(3)
	// First call executes; the immediate double-load replays the memoized
	// result; once the retention window passes the entry is evicted and a
	// late reload goes back to the orchestrator.
	s.payments.EXPECT().ConfirmAndUnlock(gomock.Any(), gomock.Any()).Return(successOutcome(), nil).Times(2)
	s.intents.EXPECT().Clear(gomock.Any(), sessionID).Return(nil).Times(3)

	for range 2 {
		result, err := s.cmds.CompleteReturn(context.Background(), sessionID, paymentID)
		s.Require().NoError(err)
		s.Equal(commands.ReturnStateOK, result.State)
	}

	s.clock.Add(10 * time.Minute)

	result, err := s.cmds.CompleteReturn(context.Background(), sessionID, paymentID)
	s.Require().NoError(err)
	s.Equal(commands.ReturnStateOK, result.State)
}

func (s *CompleteReturnTestSuite) TestConcurrentReturnsShareOneUnlock() {
	sessionID := uuid.NewString()
	paymentID := "pay_" + uuid.NewString()
	intent := builder.NewIntentBuilder().MustBuild()
	const workers = 16

	s.intents.EXPECT().Get(gomock.Any(), sessionID).Return(intent, nil).Times(workers)
	// exactly one orchestrator execution regardless of concurrency
	s.payments.EXPECT().ConfirmAndUnlock(gomock.Any(), gomock.Any()).Return(successOutcome(), nil).Times(1)
	s.intents.EXPECT().Clear(gomock.Any(), sessionID).Return(nil).Times(workers)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := s.cmds.CompleteReturn(context.Background(), sessionID, paymentID)
			s.NoError(err)
			s.Equal(commands.ReturnStateOK, result.State)
		}()
	}
	wg.Wait()
}
