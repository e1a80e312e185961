package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/maysqunaibi/strollers-mvp/internal/domain/order"
	"github.com/maysqunaibi/strollers-mvp/internal/infra"
	"github.com/maysqunaibi/strollers-mvp/internal/infra/db"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/pgconv"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const orderColumns = "id, payment_id, site_no, device_no, cart_no, cart_index, amount_halalas, " +
	"status, vendor_code, vendor_msg, unlock_requested_at, unlock_confirmed_at, returned_at, " +
	"created_at, updated_at"

type OrderRepository struct {
	db db.DBTX
}

func NewOrderRepository(dbtx db.DBTX) *OrderRepository {
	return &OrderRepository{db: dbtx}
}

// CreateIfAbsent inserts the order unless one already exists for the same
// payment id. The UNIQUE constraint on payment_id makes create-or-fetch
// atomic under concurrent callers; losing the race is not an error.
func (r *OrderRepository) CreateIfAbsent(ctx context.Context, tx db.DBTX, o *order.Order) error {
	query, args, err := psql.Insert("orders").
		Columns("id", "payment_id", "site_no", "device_no", "cart_no", "cart_index", "amount_halalas", "status").
		Values(o.ID(), o.PaymentID(), o.SiteNo(), o.DeviceNo(), o.CartNo(), o.CartIndex(), o.AmountHalalas(), o.Status().String()).
		Suffix("ON CONFLICT (payment_id) DO NOTHING").
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build order insert", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to create order", err)
	}

	return nil
}

// FindByPaymentIDForUpdate locks the order row for the duration of the
// enclosing transaction, serializing concurrent confirm-and-unlock calls
// for the same payment.
func (r *OrderRepository) FindByPaymentIDForUpdate(ctx context.Context, tx db.DBTX, paymentID string) (*order.Order, error) {
	query, args, err := psql.Select(orderColumns).
		From("orders").
		Where(sq.Eq{"payment_id": paymentID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build order select", err)
	}

	return r.scanOrder(tx.QueryRow(ctx, query, args...))
}

func (r *OrderRepository) FindByIDForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*order.Order, error) {
	query, args, err := psql.Select(orderColumns).
		From("orders").
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build order select", err)
	}

	return r.scanOrder(tx.QueryRow(ctx, query, args...))
}

// Update persists the mutable part of the order. Timestamps already set
// are never cleared; the entity enforces that before we get here.
func (r *OrderRepository) Update(ctx context.Context, tx db.DBTX, o *order.Order) error {
	query, args, err := psql.Update("orders").
		Set("status", o.Status().String()).
		Set("vendor_code", o.VendorCode()).
		Set("vendor_msg", o.VendorMsg()).
		Set("unlock_requested_at", o.UnlockRequestedAt()).
		Set("unlock_confirmed_at", o.UnlockConfirmedAt()).
		Set("returned_at", o.ReturnedAt()).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": o.ID()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build order update", err)
	}

	tag, err := tx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update order", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("order not found", nil, infra.KindNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *OrderRepository) scanOrder(row rowScanner) (*order.Order, error) {
	var (
		id                uuid.UUID
		paymentID         string
		siteNo            *string
		deviceNo          string
		cartNo            *string
		cartIndex         int
		amountHalalas     int64
		statusStr         string
		vendorCode        *string
		vendorMsg         *string
		unlockRequestedAt *time.Time
		unlockConfirmedAt *time.Time
		returnedAt        *time.Time
		createdAt         time.Time
		updatedAt         time.Time
	)

	err := row.Scan(
		&id, &paymentID, &siteNo, &deviceNo, &cartNo, &cartIndex, &amountHalalas,
		&statusStr, &vendorCode, &vendorMsg, &unlockRequestedAt, &unlockConfirmedAt, &returnedAt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to scan order", err)
	}

	status, err := order.NewStatus(statusStr)
	if err != nil {
		return nil, infra.WrapRepoErr("order has invalid status", err)
	}

	return order.ReconstructOrder(
		id, paymentID, deviceNo, cartNo, cartIndex, siteNo, amountHalalas,
		status, vendorCode, vendorMsg,
		unlockRequestedAt, unlockConfirmedAt, returnedAt,
		createdAt, updatedAt,
	), nil
}
