package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/maysqunaibi/strollers-mvp/internal/domain/order"
	"github.com/maysqunaibi/strollers-mvp/internal/domain/rental"
	"github.com/maysqunaibi/strollers-mvp/internal/infra/db"
	"github.com/maysqunaibi/strollers-mvp/internal/infra/provider"
	"github.com/maysqunaibi/strollers-mvp/internal/infra/vendor"
)

// Orchestrator-level outcome codes. "00000" matches the vendor's success
// code so a caller checks both halves the same way.
const (
	CodeOK               = "00000"
	CodePaymentNotFound  = "A1001"
	CodePaymentUnpaid    = "A1002"
	CodeOrderCanceled    = "A1003"
	CodeUnlockInProgress = "A1004"
	CodeAmountMismatch   = "A1005"
)

// UnlockOutcome is the composite result of one confirm-and-unlock
// exchange: Code reports the orchestrator half, VendorCode the hardware
// half. Both must be "00000" for a true success.
type UnlockOutcome struct {
	Code        string
	Msg         string
	VendorCode  string
	VendorMsg   string
	OrderID     uuid.UUID
	OrderStatus order.Status
	Replayed    bool
}

func (o *UnlockOutcome) Success() bool {
	return o.Code == CodeOK && o.VendorCode == vendor.CodeOK
}

type ConfirmAndUnlockParams struct {
	PaymentID     string
	DeviceNo      string
	CartNo        *string
	CartIndex     int
	SiteNo        *string
	AmountHalalas int64
}

// TxBeginner starts pgx transactions; *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type OrderRepository interface {
	CreateIfAbsent(ctx context.Context, tx db.DBTX, o *order.Order) error
	FindByPaymentIDForUpdate(ctx context.Context, tx db.DBTX, paymentID string) (*order.Order, error)
	FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*order.Order, error)
	Update(ctx context.Context, tx db.DBTX, o *order.Order) error
}

type PaymentRepository interface {
	Upsert(ctx context.Context, tx db.DBTX, p *provider.Payment) error
}

type OperatorRepository interface {
	UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// ProviderGateway is the authoritative source for payment status; client
// or query-string claims are never trusted instead of it.
type ProviderGateway interface {
	FetchPayment(ctx context.Context, id string) (*provider.Payment, error)
}

type VendorGateway interface {
	UnlockCart(ctx context.Context, deviceNo string, cartIndex int, cartNo *string) (*vendor.Result, error)
}

// IntentStore is the durable single slot holding the customer's pending
// selection across the payment redirect.
type IntentStore interface {
	Put(ctx context.Context, sessionID string, intent *rental.Intent) error
	Get(ctx context.Context, sessionID string) (*rental.Intent, error)
	Clear(ctx context.Context, sessionID string) error
}
