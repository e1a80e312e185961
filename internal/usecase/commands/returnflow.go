package commands

import (
	"context"
	"log/slog"
	"time"

	"github.com/maysqunaibi/strollers-mvp/internal/infra"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/clock"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/oneshot"
)

const (
	ReturnStateOK    = "ok"
	ReturnStateError = "error"
)

// How long a completed return stays memoized. Long enough for the
// browser's redirect double-loads to replay the same result; anything
// later re-runs the orchestrator, whose replay short-circuit answers.
const gateRetention = 5 * time.Minute

// ReturnResult is what the return page renders after the customer comes
// back from the payment provider.
type ReturnResult struct {
	State   string
	Message string
	Outcome *UnlockOutcome
}

type ReturnCommands interface {
	CompleteReturn(ctx context.Context, sessionID, paymentID string) (*ReturnResult, error)
}

type returnCommandsImpl struct {
	intents  IntentStore
	payments PaymentCommands
	gate     *oneshot.Gate[*UnlockOutcome]
}

func NewReturnCommands(intents IntentStore, payments PaymentCommands, clk clock.Clock) ReturnCommands {
	return &returnCommandsImpl{
		intents:  intents,
		payments: payments,
		gate:     oneshot.NewGate[*UnlockOutcome](clk, gateRetention),
	}
}

// CompleteReturn resumes the rental after the provider redirect: it
// rehydrates the stashed selection, runs confirm-and-unlock exactly once
// per payment id even under concurrent page loads, and clears the
// selection only after a confirmed success so an interrupted attempt can
// resume from the same data.
func (r *returnCommandsImpl) CompleteReturn(ctx context.Context, sessionID, paymentID string) (*ReturnResult, error) {
	intent, err := r.intents.Get(ctx, sessionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return &ReturnResult{
				State:   ReturnStateError,
				Message: "Missing selection data",
			}, nil
		}
		return nil, err
	}

	outcome, err := r.gate.Do(paymentID, func() (*UnlockOutcome, error) {
		return r.payments.ConfirmAndUnlock(ctx, ConfirmAndUnlockParams{
			PaymentID:     paymentID,
			DeviceNo:      intent.DeviceNo(),
			CartNo:        intent.CartNo(),
			CartIndex:     intent.CartIndex(),
			SiteNo:        intent.SiteNo(),
			AmountHalalas: intent.AmountHalalas(),
		})
	})
	if err != nil {
		// A failed attempt must not poison later explicit retries.
		r.gate.Forget(paymentID)
		return nil, err
	}

	if !outcome.Success() {
		r.gate.Forget(paymentID)
		return &ReturnResult{
			State:   ReturnStateError,
			Message: failureMessage(outcome),
			Outcome: outcome,
		}, nil
	}

	if err := r.intents.Clear(ctx, sessionID); err != nil {
		// The unlock already happened; a lingering slot is recoverable
		// while a lost unlock is not.
		slog.Warn("failed to clear rental selection after unlock", "error", err)
	}

	return &ReturnResult{
		State:   ReturnStateOK,
		Outcome: outcome,
	}, nil
}

func failureMessage(o *UnlockOutcome) string {
	switch {
	case o.VendorMsg != "":
		return o.VendorMsg
	case o.Msg != "":
		return o.Msg
	default:
		return "Unknown error"
	}
}
