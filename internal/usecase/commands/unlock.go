package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/maysqunaibi/strollers-mvp/internal/domain/order"
	"github.com/maysqunaibi/strollers-mvp/internal/domain/payment"
	"github.com/maysqunaibi/strollers-mvp/internal/infra/provider"
	"github.com/maysqunaibi/strollers-mvp/internal/infra/vendor"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/clock"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/errs"
)

var (
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
	ErrProviderUnavailable     = errs.New("payment provider unavailable")
	ErrVendorUnavailable       = errs.New("vendor unreachable")
)

// An order stuck in unlocking younger than this is treated as having a
// call in flight; older ones may be re-issued by a retry.
const unlockInFlightWindow = time.Minute

type PaymentCommands interface {
	ConfirmAndUnlock(ctx context.Context, params ConfirmAndUnlockParams) (*UnlockOutcome, error)
}

type paymentCommandsImpl struct {
	orders   OrderRepository
	payments PaymentRepository
	provider ProviderGateway
	vendor   VendorGateway
	db       TxBeginner
	clock    clock.Clock
}

func NewPaymentCommands(
	orders OrderRepository,
	payments PaymentRepository,
	providerGW ProviderGateway,
	vendorGW VendorGateway,
	db TxBeginner,
	clock clock.Clock,
) PaymentCommands {
	return &paymentCommandsImpl{
		orders:   orders,
		payments: payments,
		provider: providerGW,
		vendor:   vendorGW,
		db:       db,
		clock:    clock,
	}
}

// ConfirmAndUnlock is the idempotent bridge between "provider says paid"
// and "hardware says unlocked". The order row is created-or-fetched
// atomically by payment id and held under FOR UPDATE while the payment
// is verified, so concurrent retries for the same payment serialize and
// at most one hardware unlock is ever issued per payment.
//
// The unlocking mark is committed in its own transaction before the
// vendor is contacted: a crash mid-call leaves a durable unlocking row,
// so a retry inside the in-flight window reports the call in progress
// instead of re-issuing a release the hardware may already have
// executed. The vendor result is then recorded in a second transaction.
//
// Business failures (unpaid, canceled, vendor rejection) come back as a
// non-success outcome with a nil error; only infrastructure failures
// return an error.
func (c *paymentCommandsImpl) ConfirmAndUnlock(ctx context.Context, params ConfirmAndUnlockParams) (*UnlockOutcome, error) {
	candidate, err := order.NewOrder(
		params.PaymentID, params.DeviceNo, params.CartNo,
		params.CartIndex, params.SiteNo, params.AmountHalalas,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	current, outcome, err := c.prepareUnlock(ctx, candidate)
	if err != nil {
		return nil, err
	}
	if outcome != nil {
		return outcome, nil
	}

	result, err := c.vendor.UnlockCart(ctx, current.DeviceNo(), current.CartIndex(), current.CartNo())
	if err != nil {
		// Unknown whether the command landed; the committed unlocking
		// row stays and the in-flight window governs the next retry.
		return nil, errs.Mark(err, ErrVendorUnavailable)
	}

	return c.recordVendorResult(ctx, current.PaymentID(), result)
}

// prepareUnlock runs the pre-vendor transaction: create-or-fetch the
// order, replay or refuse via shortCircuit, verify the payment with the
// provider, and commit the order as unlocking. A non-nil outcome means
// the vendor must not be contacted.
func (c *paymentCommandsImpl) prepareUnlock(ctx context.Context, candidate *order.Order) (*order.Order, *UnlockOutcome, error) {
	tx, err := c.db.Begin(ctx)
	if err != nil {
		return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer rollbackQuietly(ctx, tx)

	if err := c.orders.CreateIfAbsent(ctx, tx, candidate); err != nil {
		return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	current, err := c.orders.FindByPaymentIDForUpdate(ctx, tx, candidate.PaymentID())
	if err != nil {
		return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if outcome := c.shortCircuit(current); outcome != nil {
		if err := tx.Commit(ctx); err != nil {
			return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil, outcome, nil
	}

	outcome, err := c.verifyPayment(ctx, tx, current)
	if err != nil {
		return nil, nil, err
	}
	if outcome != nil {
		if err := tx.Commit(ctx); err != nil {
			return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil, outcome, nil
	}

	now := c.clock.Now()
	if current.Status() == order.StatusUnlocking {
		// A stale in-flight request whose result was lost; re-issue.
		if err := current.ReissueUnlock(now); err != nil {
			return nil, nil, errs.Mark(err, ErrDomainValidation)
		}
	} else {
		if err := current.BeginUnlock(now); err != nil {
			return nil, nil, errs.Mark(err, ErrDomainValidation)
		}
	}

	if err := c.orders.Update(ctx, tx, current); err != nil {
		return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return current, nil, nil
}

// shortCircuit handles orders that must not reach the vendor again:
// already-confirmed unlocks replay their recorded outcome, canceled
// orders refuse, and an unlock still in flight reports itself instead of
// racing a second command.
func (c *paymentCommandsImpl) shortCircuit(o *order.Order) *UnlockOutcome {
	if o.IsUnlockConfirmed() {
		outcome := &UnlockOutcome{
			Code:        CodeOK,
			Msg:         "already unlocked",
			VendorCode:  valueOr(o.VendorCode(), CodeOK),
			VendorMsg:   valueOr(o.VendorMsg(), ""),
			OrderID:     o.ID(),
			OrderStatus: o.Status(),
			Replayed:    true,
		}
		return outcome
	}

	if o.Status() == order.StatusCanceled {
		return &UnlockOutcome{
			Code:        CodeOrderCanceled,
			Msg:         "order was canceled",
			OrderID:     o.ID(),
			OrderStatus: o.Status(),
		}
	}

	if o.Status() == order.StatusUnlocking {
		requestedAt := o.UnlockRequestedAt()
		if requestedAt != nil && c.clock.Now().Sub(*requestedAt) < unlockInFlightWindow {
			return &UnlockOutcome{
				Code:        CodeUnlockInProgress,
				Msg:         "an unlock request is already in flight",
				OrderID:     o.ID(),
				OrderStatus: o.Status(),
			}
		}
	}

	return nil
}

// verifyPayment fetches the authoritative payment from the provider and
// records the snapshot. A non-nil outcome refuses the unlock (payment
// missing, unpaid, or amount mismatch); the snapshot is still committed
// by the caller so the console sees what the provider reported.
func (c *paymentCommandsImpl) verifyPayment(ctx context.Context, tx pgx.Tx, o *order.Order) (*UnlockOutcome, error) {
	record, err := c.provider.FetchPayment(ctx, o.PaymentID())
	if err != nil {
		if errs.Is(err, provider.ErrPaymentNotFound) {
			return &UnlockOutcome{
				Code:        CodePaymentNotFound,
				Msg:         "payment not found at provider",
				OrderID:     o.ID(),
				OrderStatus: o.Status(),
			}, nil
		}
		return nil, errs.Mark(err, ErrProviderUnavailable)
	}

	if err := c.payments.Upsert(ctx, tx, record); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if record.Status != payment.StatusPaid {
		return &UnlockOutcome{
			Code:        CodePaymentUnpaid,
			Msg:         fmt.Sprintf("payment status is %s", record.Status),
			OrderID:     o.ID(),
			OrderStatus: o.Status(),
		}, nil
	}

	if record.AmountHalalas != o.AmountHalalas() {
		return &UnlockOutcome{
			Code: CodeAmountMismatch,
			Msg: fmt.Sprintf("paid amount %d does not match order amount %d",
				record.AmountHalalas, o.AmountHalalas()),
			OrderID:     o.ID(),
			OrderStatus: o.Status(),
		}, nil
	}

	return nil, nil
}

// recordVendorResult reacquires the order and stores what the hardware
// answered, in a transaction of its own.
func (c *paymentCommandsImpl) recordVendorResult(ctx context.Context, paymentID string, result *vendor.Result) (*UnlockOutcome, error) {
	tx, err := c.db.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer rollbackQuietly(ctx, tx)

	o, err := c.orders.FindByPaymentIDForUpdate(ctx, tx, paymentID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if result.OK() {
		if err := o.ConfirmUnlock(c.clock.Now(), result.Code, result.Msg); err != nil {
			return nil, errs.Mark(err, ErrDomainValidation)
		}
	} else {
		if err := o.FailUnlock(result.Code, result.Msg); err != nil {
			return nil, errs.Mark(err, ErrDomainValidation)
		}
	}

	if err := c.orders.Update(ctx, tx, o); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &UnlockOutcome{
		Code:        CodeOK,
		Msg:         "payment confirmed",
		VendorCode:  result.Code,
		VendorMsg:   result.Msg,
		OrderID:     o.ID(),
		OrderStatus: o.Status(),
	}, nil
}

func rollbackQuietly(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		slog.Warn("failed to rollback transaction", "error", err)
	}
}

func valueOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
