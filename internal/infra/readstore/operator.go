package readstore

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/maysqunaibi/strollers-mvp/internal/infra"
	"github.com/maysqunaibi/strollers-mvp/internal/infra/db"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/pgconv"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/queries"
)

type OperatorReadStore struct {
	db db.DBTX
}

func NewOperatorReadStore(dbtx db.DBTX) *OperatorReadStore {
	return &OperatorReadStore{db: dbtx}
}

func (r *OperatorReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedOperatorView, error) {
	query, args, err := psql.Select("id, email, role, is_active, last_login_at").
		From("operators").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build operator select", err)
	}

	var v queries.AuthorizedOperatorView
	err = r.db.QueryRow(ctx, query, args...).Scan(&v.ID, &v.Email, &v.Role, &v.IsActive, &v.LastLoginAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("operator not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find operator by ID", err)
	}

	return &v, nil
}

func (r *OperatorReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedOperatorView, string, error) {
	query, args, err := psql.Select("id, email, role, is_active, last_login_at, password_hash").
		From("operators").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, "", infra.WrapRepoErr("failed to build operator select", err)
	}

	var (
		v            queries.AuthorizedOperatorView
		passwordHash string
	)
	err = r.db.QueryRow(ctx, query, args...).Scan(&v.ID, &v.Email, &v.Role, &v.IsActive, &v.LastLoginAt, &passwordHash)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("operator not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find operator by email", err)
	}

	return &v, passwordHash, nil
}
