package readstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/maysqunaibi/strollers-mvp/internal/infra"
	"github.com/maysqunaibi/strollers-mvp/internal/infra/db"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/pgconv"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/queries"
)

const paymentViewColumns = "id, status, mode, scheme, amount_halalas, raw_metadata, created_at, updated_at"

type PaymentReadStore struct {
	db db.DBTX
}

func NewPaymentReadStore(dbtx db.DBTX) *PaymentReadStore {
	return &PaymentReadStore{db: dbtx}
}

func (r *PaymentReadStore) FindByID(ctx context.Context, id string) (*queries.PaymentView, error) {
	query, args, err := psql.Select(paymentViewColumns).
		From("payments").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build payment select", err)
	}

	view, err := scanPaymentView(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment", err)
	}
	return view, nil
}

func (r *PaymentReadStore) ListRecent(ctx context.Context, limit int32) ([]*queries.PaymentView, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	query, args, err := psql.Select(paymentViewColumns).
		From("payments").
		OrderBy("updated_at DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build payment list", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list payments", err)
	}
	defer rows.Close()

	views := make([]*queries.PaymentView, 0)
	for rows.Next() {
		view, err := scanPaymentView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan payment row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read payment rows", err)
	}

	return views, nil
}

func scanPaymentView(row pgx.Row) (*queries.PaymentView, error) {
	var v queries.PaymentView
	err := row.Scan(
		&v.ID, &v.Status, &v.Mode, &v.Scheme, &v.AmountHalalas, &v.Raw,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
