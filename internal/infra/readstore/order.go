package readstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/maysqunaibi/strollers-mvp/internal/domain/order"
	"github.com/maysqunaibi/strollers-mvp/internal/infra"
	"github.com/maysqunaibi/strollers-mvp/internal/infra/db"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/pgconv"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/queries"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const defaultListLimit = 50

const orderViewColumns = "id, payment_id, site_no, device_no, cart_no, cart_index, amount_halalas, " +
	"status, vendor_code, vendor_msg, unlock_requested_at, unlock_confirmed_at, returned_at, " +
	"created_at, updated_at"

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(dbtx db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: dbtx}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *OrderReadStore) FindByPaymentID(ctx context.Context, paymentID string) (*queries.OrderView, error) {
	return r.findOne(ctx, sq.Eq{"payment_id": paymentID})
}

func (r *OrderReadStore) findOne(ctx context.Context, pred any) (*queries.OrderView, error) {
	query, args, err := psql.Select(orderViewColumns).
		From("orders").
		Where(pred).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build order select", err)
	}

	view, err := scanOrderView(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order", err)
	}
	return view, nil
}

func (r *OrderReadStore) List(ctx context.Context, filter queries.OrderListFilter) ([]*queries.OrderView, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	builder := psql.Select(orderViewColumns).
		From("orders").
		OrderBy("created_at DESC").
		Limit(uint64(limit))

	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": *filter.Status})
	}
	if filter.DeviceNo != nil {
		builder = builder.Where(sq.Eq{"device_no": *filter.DeviceNo})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build order list", err)
	}

	return r.queryViews(ctx, query, args)
}

// ListActive returns orders whose cart is physically out: unlocked and
// not yet returned, plus unlock attempts still in flight or failed.
func (r *OrderReadStore) ListActive(ctx context.Context) ([]*queries.OrderView, error) {
	query, args, err := psql.Select(orderViewColumns).
		From("orders").
		Where(sq.Eq{"status": []string{
			order.StatusUnlocking.String(),
			order.StatusInUse.String(),
			order.StatusOverdue.String(),
			order.StatusUnlockFailed.String(),
		}}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build active order list", err)
	}

	return r.queryViews(ctx, query, args)
}

func (r *OrderReadStore) queryViews(ctx context.Context, query string, args []any) ([]*queries.OrderView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list orders", err)
	}
	defer rows.Close()

	views := make([]*queries.OrderView, 0)
	for rows.Next() {
		view, err := scanOrderView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan order row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read order rows", err)
	}

	return views, nil
}

func scanOrderView(row pgx.Row) (*queries.OrderView, error) {
	var v queries.OrderView
	err := row.Scan(
		&v.ID, &v.PaymentID, &v.SiteNo, &v.DeviceNo, &v.CartNo, &v.CartIndex, &v.AmountHalalas,
		&v.Status, &v.VendorCode, &v.VendorMsg, &v.UnlockRequestedAt, &v.UnlockConfirmedAt, &v.ReturnedAt,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
