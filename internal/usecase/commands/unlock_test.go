//go:build unit

package commands_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/maysqunaibi/strollers-mvp/internal/domain/order"
	"github.com/maysqunaibi/strollers-mvp/internal/domain/payment"
	"github.com/maysqunaibi/strollers-mvp/internal/infra/provider"
	"github.com/maysqunaibi/strollers-mvp/internal/infra/vendor"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/clock"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/errs"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/commands"
	"github.com/maysqunaibi/strollers-mvp/tests/common/builder"
	commandsmock "github.com/maysqunaibi/strollers-mvp/tests/mock/commands"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// stubTx satisfies pgx.Tx for the handful of calls the commands make.
// Everything outside Commit/Rollback panics via the embedded nil interface.
type stubTx struct {
	pgx.Tx
	commitErr error
	committed bool
}

func (t *stubTx) Commit(ctx context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *stubTx) Rollback(ctx context.Context) error {
	if t.committed {
		return pgx.ErrTxClosed
	}
	return nil
}

type ConfirmAndUnlockTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	orders   *commandsmock.MockOrderRepository
	payments *commandsmock.MockPaymentRepository
	provider *commandsmock.MockProviderGateway
	vendor   *commandsmock.MockVendorGateway
	beginner *commandsmock.MockTxBeginner
	txs      []*stubTx
	clock    *clock.MockClock
	cmds     commands.PaymentCommands
}

func (s *ConfirmAndUnlockTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.orders = commandsmock.NewMockOrderRepository(s.ctrl)
	s.payments = commandsmock.NewMockPaymentRepository(s.ctrl)
	s.provider = commandsmock.NewMockProviderGateway(s.ctrl)
	s.vendor = commandsmock.NewMockVendorGateway(s.ctrl)
	s.beginner = commandsmock.NewMockTxBeginner(s.ctrl)
	s.txs = nil
	s.clock = clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.cmds = commands.NewPaymentCommands(s.orders, s.payments, s.provider, s.vendor, s.beginner, s.clock)
}

func (s *ConfirmAndUnlockTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestConfirmAndUnlockSuite(t *testing.T) {
	suite.Run(t, new(ConfirmAndUnlockTestSuite))
}

func (s *ConfirmAndUnlockTestSuite) params(b *builder.OrderBuilder) commands.ConfirmAndUnlockParams {
	return commands.ConfirmAndUnlockParams{
		PaymentID:     b.PaymentID,
		DeviceNo:      b.DeviceNo,
		CartNo:        b.CartNo,
		CartIndex:     b.CartIndex,
		SiteNo:        b.SiteNo,
		AmountHalalas: b.AmountHalalas,
	}
}

func (s *ConfirmAndUnlockTestSuite) paidPayment(b *builder.OrderBuilder) *provider.Payment {
	return &provider.Payment{
		ID:            b.PaymentID,
		Status:        payment.StatusPaid,
		Mode:          "live",
		AmountHalalas: b.AmountHalalas,
		CreatedAt:     s.clock.Now().Add(-time.Minute),
		Raw:           json.RawMessage(`{}`),
	}
}

// expectBegin hands out a fresh stubTx per Begin so tests can assert
// commit state of the verification and the result-recording
// transactions separately.
func (s *ConfirmAndUnlockTestSuite) expectBegin(times int) {
	s.beginner.EXPECT().Begin(gomock.Any()).DoAndReturn(func(context.Context) (pgx.Tx, error) {
		tx := &stubTx{}
		s.txs = append(s.txs, tx)
		return tx, nil
	}).Times(times)
}

func (s *ConfirmAndUnlockTestSuite) TestHappyPath() {
	b := builder.NewOrderBuilder()
	existing := b.BuildReconstructed(s.clock.Now())

	s.expectBegin(2)
	s.orders.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.orders.EXPECT().FindByPaymentIDForUpdate(gomock.Any(), gomock.Any(), b.PaymentID).Return(existing, nil).Times(2)
	s.provider.EXPECT().FetchPayment(gomock.Any(), b.PaymentID).Return(s.paidPayment(b), nil)
	s.payments.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.orders.EXPECT().Update(gomock.Any(), gomock.Any(), existing).Return(nil).Times(2)
	s.vendor.EXPECT().UnlockCart(gomock.Any(), b.DeviceNo, b.CartIndex, b.CartNo).
		Return(&vendor.Result{Code: vendor.CodeOK, Msg: "OK"}, nil)

	outcome, err := s.cmds.ConfirmAndUnlock(context.Background(), s.params(b))
	s.Require().NoError(err)
	s.Require().NotNil(outcome)
	s.True(outcome.Success())
	s.Equal(commands.CodeOK, outcome.Code)
	s.Equal(vendor.CodeOK, outcome.VendorCode)
	s.Equal(order.StatusInUse, outcome.OrderStatus)
	s.False(outcome.Replayed)
	s.Require().Len(s.txs, 2)
	s.True(s.txs[0].committed)
	s.True(s.txs[1].committed)
	s.True(existing.IsUnlockConfirmed())
}

func (s *ConfirmAndUnlockTestSuite) TestUnlockMarkCommittedBeforeVendorCall() {
	b := builder.NewOrderBuilder()
	existing := b.BuildReconstructed(s.clock.Now())

	s.expectBegin(2)
	s.orders.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.orders.EXPECT().FindByPaymentIDForUpdate(gomock.Any(), gomock.Any(), b.PaymentID).Return(existing, nil).Times(2)
	s.provider.EXPECT().FetchPayment(gomock.Any(), b.PaymentID).Return(s.paidPayment(b), nil)
	s.payments.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.orders.EXPECT().Update(gomock.Any(), gomock.Any(), existing).Return(nil).Times(2)
	// By the time the hardware is contacted, the unlocking row must
	// already be durable; a crash here must not roll the order back.
	s.vendor.EXPECT().UnlockCart(gomock.Any(), b.DeviceNo, b.CartIndex, b.CartNo).
		DoAndReturn(func(context.Context, string, int, *string) (*vendor.Result, error) {
			s.Require().Len(s.txs, 1)
			s.True(s.txs[0].committed)
			s.Equal(order.StatusUnlocking, existing.Status())
			return &vendor.Result{Code: vendor.CodeOK, Msg: "OK"}, nil
		})

	outcome, err := s.cmds.ConfirmAndUnlock(context.Background(), s.params(b))
	s.Require().NoError(err)
	s.True(outcome.Success())
}

func (s *ConfirmAndUnlockTestSuite) TestReplayAfterConfirmedUnlock() {
	b := builder.NewOrderBuilder()
	b.Status = order.StatusInUse.String()
	existing := b.BuildReconstructed(s.clock.Now())

	s.expectBegin(1)
	s.orders.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.orders.EXPECT().FindByPaymentIDForUpdate(gomock.Any(), gomock.Any(), b.PaymentID).Return(existing, nil)
	// no provider fetch, no vendor call, no update

	outcome, err := s.cmds.ConfirmAndUnlock(context.Background(), s.params(b))
	s.Require().NoError(err)
	s.True(outcome.Replayed)
	s.Equal(commands.CodeOK, outcome.Code)
	s.Equal(vendor.CodeOK, outcome.VendorCode)
	s.Equal(order.StatusInUse, outcome.OrderStatus)
	s.True(s.txs[0].committed)
}

func (s *ConfirmAndUnlockTestSuite) TestCanceledOrderRefuses() {
	b := builder.NewOrderBuilder()
	b.Status = order.StatusCanceled.String()
	existing := b.BuildReconstructed(s.clock.Now())

	s.expectBegin(1)
	s.orders.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.orders.EXPECT().FindByPaymentIDForUpdate(gomock.Any(), gomock.Any(), b.PaymentID).Return(existing, nil)

	outcome, err := s.cmds.ConfirmAndUnlock(context.Background(), s.params(b))
	s.Require().NoError(err)
	s.Equal(commands.CodeOrderCanceled, outcome.Code)
	s.False(outcome.Success())
}

func (s *ConfirmAndUnlockTestSuite) TestFreshUnlockingReportsInProgress() {
	b := builder.NewOrderBuilder()
	b.Status = order.StatusUnlocking.String()
	// BuildReconstructed stamps requestedAt 10s before now, inside the
	// in-flight window.
	existing := b.BuildReconstructed(s.clock.Now())

	s.expectBegin(1)
	s.orders.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.orders.EXPECT().FindByPaymentIDForUpdate(gomock.Any(), gomock.Any(), b.PaymentID).Return(existing, nil)

	outcome, err := s.cmds.ConfirmAndUnlock(context.Background(), s.params(b))
	s.Require().NoError(err)
	s.Equal(commands.CodeUnlockInProgress, outcome.Code)
	s.False(outcome.Success())
	s.True(s.txs[0].committed)
}

func (s *ConfirmAndUnlockTestSuite) TestStaleUnlockingIsReissued() {
	b := builder.NewOrderBuilder()
	b.Status = order.StatusUnlocking.String()
	existing := b.BuildReconstructed(s.clock.Now())

	// Move past the in-flight window so the earlier request counts as lost.
	s.clock.Add(5 * time.Minute)

	s.expectBegin(2)
	s.orders.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.orders.EXPECT().FindByPaymentIDForUpdate(gomock.Any(), gomock.Any(), b.PaymentID).Return(existing, nil).Times(2)
	s.provider.EXPECT().FetchPayment(gomock.Any(), b.PaymentID).Return(s.paidPayment(b), nil)
	s.payments.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.orders.EXPECT().Update(gomock.Any(), gomock.Any(), existing).Return(nil).Times(2)
	s.vendor.EXPECT().UnlockCart(gomock.Any(), b.DeviceNo, b.CartIndex, b.CartNo).
		Return(&vendor.Result{Code: vendor.CodeOK, Msg: "OK"}, nil)

	outcome, err := s.cmds.ConfirmAndUnlock(context.Background(), s.params(b))
	s.Require().NoError(err)
	s.True(outcome.Success())
	s.Equal(s.clock.Now(), *existing.UnlockConfirmedAt())
}

func (s *ConfirmAndUnlockTestSuite) TestPaymentNotFoundAtProvider() {
	b := builder.NewOrderBuilder()
	existing := b.BuildReconstructed(s.clock.Now())

	s.expectBegin(1)
	s.orders.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.orders.EXPECT().FindByPaymentIDForUpdate(gomock.Any(), gomock.Any(), b.PaymentID).Return(existing, nil)
	s.provider.EXPECT().FetchPayment(gomock.Any(), b.PaymentID).Return(nil, provider.ErrPaymentNotFound)

	outcome, err := s.cmds.ConfirmAndUnlock(context.Background(), s.params(b))
	s.Require().NoError(err)
	s.Equal(commands.CodePaymentNotFound, outcome.Code)
	s.False(outcome.Success())
	s.True(s.txs[0].committed)
}

func (s *ConfirmAndUnlockTestSuite) TestProviderOutageIsAnError() {
	b := builder.NewOrderBuilder()
	existing := b.BuildReconstructed(s.clock.Now())

	s.expectBegin(1)
	s.orders.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.orders.EXPECT().FindByPaymentIDForUpdate(gomock.Any(), gomock.Any(), b.PaymentID).Return(existing, nil)
	s.provider.EXPECT().FetchPayment(gomock.Any(), b.PaymentID).Return(nil, errors.New("dial timeout"))

	outcome, err := s.cmds.ConfirmAndUnlock(context.Background(), s.params(b))
	s.Require().Error(err)
	s.True(errs.Is(err, commands.ErrProviderUnavailable))
	s.Nil(outcome)
	s.False(s.txs[0].committed)
}

func (s *ConfirmAndUnlockTestSuite) TestUnpaidPayment() {
	b := builder.NewOrderBuilder()
	existing := b.BuildReconstructed(s.clock.Now())
	record := s.paidPayment(b)
	record.Status = payment.StatusPending

	s.expectBegin(1)
	s.orders.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.orders.EXPECT().FindByPaymentIDForUpdate(gomock.Any(), gomock.Any(), b.PaymentID).Return(existing, nil)
	s.provider.EXPECT().FetchPayment(gomock.Any(), b.PaymentID).Return(record, nil)
	s.payments.EXPECT().Upsert(gomock.Any(), gomock.Any(), record).Return(nil)

	outcome, err := s.cmds.ConfirmAndUnlock(context.Background(), s.params(b))
	s.Require().NoError(err)
	s.Equal(commands.CodePaymentUnpaid, outcome.Code)
	s.Equal(order.StatusPendingPayment, outcome.OrderStatus)
	// the unpaid payment record is still persisted for the console
	s.True(s.txs[0].committed)
}

func (s *ConfirmAndUnlockTestSuite) TestAmountMismatch() {
	b := builder.NewOrderBuilder()
	existing := b.BuildReconstructed(s.clock.Now())
	record := s.paidPayment(b)
	record.AmountHalalas = b.AmountHalalas + 500

	s.expectBegin(1)
	s.orders.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.orders.EXPECT().FindByPaymentIDForUpdate(gomock.Any(), gomock.Any(), b.PaymentID).Return(existing, nil)
	s.provider.EXPECT().FetchPayment(gomock.Any(), b.PaymentID).Return(record, nil)
	s.payments.EXPECT().Upsert(gomock.Any(), gomock.Any(), record).Return(nil)

	outcome, err := s.cmds.ConfirmAndUnlock(context.Background(), s.params(b))
	s.Require().NoError(err)
	s.Equal(commands.CodeAmountMismatch, outcome.Code)
	s.False(outcome.Success())
}

func (s *ConfirmAndUnlockTestSuite) TestVendorRejection() {
	b := builder.NewOrderBuilder()
	existing := b.BuildReconstructed(s.clock.Now())

	s.expectBegin(2)
	s.orders.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.orders.EXPECT().FindByPaymentIDForUpdate(gomock.Any(), gomock.Any(), b.PaymentID).Return(existing, nil).Times(2)
	s.provider.EXPECT().FetchPayment(gomock.Any(), b.PaymentID).Return(s.paidPayment(b), nil)
	s.payments.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.orders.EXPECT().Update(gomock.Any(), gomock.Any(), existing).Return(nil).Times(2)
	s.vendor.EXPECT().UnlockCart(gomock.Any(), b.DeviceNo, b.CartIndex, b.CartNo).
		Return(&vendor.Result{Code: "50001", Msg: "cart jammed"}, nil)

	outcome, err := s.cmds.ConfirmAndUnlock(context.Background(), s.params(b))
	s.Require().NoError(err)
	s.Equal(commands.CodeOK, outcome.Code)
	s.Equal("50001", outcome.VendorCode)
	s.False(outcome.Success())
	s.Equal(order.StatusUnlockFailed, outcome.OrderStatus)
	s.False(existing.IsUnlockConfirmed())
	s.Require().Len(s.txs, 2)
	s.True(s.txs[0].committed)
	s.True(s.txs[1].committed)
}

func (s *ConfirmAndUnlockTestSuite) TestVendorTransportErrorLeavesOrderUnlocking() {
	b := builder.NewOrderBuilder()
	existing := b.BuildReconstructed(s.clock.Now())

	s.expectBegin(1)
	s.orders.EXPECT().CreateIfAbsent(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.orders.EXPECT().FindByPaymentIDForUpdate(gomock.Any(), gomock.Any(), b.PaymentID).Return(existing, nil)
	s.provider.EXPECT().FetchPayment(gomock.Any(), b.PaymentID).Return(s.paidPayment(b), nil)
	s.payments.EXPECT().Upsert(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.orders.EXPECT().Update(gomock.Any(), gomock.Any(), existing).Return(nil)
	s.vendor.EXPECT().UnlockCart(gomock.Any(), b.DeviceNo, b.CartIndex, b.CartNo).
		Return(nil, errors.New("connection reset"))

	outcome, err := s.cmds.ConfirmAndUnlock(context.Background(), s.params(b))
	s.Require().Error(err)
	s.True(errs.Is(err, commands.ErrVendorUnavailable))
	s.Nil(outcome)
	// the unlocking row was committed before the call, so the in-flight
	// window governs the next retry
	s.True(s.txs[0].committed)
	s.Equal(order.StatusUnlocking, existing.Status())
}

func (s *ConfirmAndUnlockTestSuite) TestInvalidParams() {
	b := builder.NewOrderBuilder()
	params := s.params(b)
	params.PaymentID = ""

	outcome, err := s.cmds.ConfirmAndUnlock(context.Background(), params)
	s.Require().Error(err)
	s.True(errs.Is(err, commands.ErrDomainValidation))
	s.True(errs.Is(err, order.ErrMissingPaymentID))
	s.Nil(outcome)
}
