package readstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/maysqunaibi/strollers-mvp/internal/infra"
	"github.com/maysqunaibi/strollers-mvp/internal/infra/db"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/pgconv"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/queries"
)

const packageViewColumns = "id, name, amount_halalas, duration_minutes, sort_order, is_active, created_at, updated_at"

type PackageReadStore struct {
	db db.DBTX
}

func NewPackageReadStore(dbtx db.DBTX) *PackageReadStore {
	return &PackageReadStore{db: dbtx}
}

func (r *PackageReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PackageView, error) {
	query, args, err := psql.Select(packageViewColumns).
		From("packages").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build package select", err)
	}

	view, err := scanPackageView(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("package not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find package", err)
	}
	return view, nil
}

func (r *PackageReadStore) ListActive(ctx context.Context) ([]*queries.PackageView, error) {
	query, args, err := psql.Select(packageViewColumns).
		From("packages").
		Where(sq.Eq{"is_active": true}).
		OrderBy("sort_order ASC", "amount_halalas ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build package list", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list packages", err)
	}
	defer rows.Close()

	views := make([]*queries.PackageView, 0)
	for rows.Next() {
		view, err := scanPackageView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan package row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read package rows", err)
	}

	return views, nil
}

func scanPackageView(row pgx.Row) (*queries.PackageView, error) {
	var v queries.PackageView
	err := row.Scan(
		&v.ID, &v.Name, &v.AmountHalalas, &v.DurationMinutes, &v.SortOrder, &v.IsActive,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
