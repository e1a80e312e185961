package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/maysqunaibi/strollers-mvp/internal/infra"
	"github.com/maysqunaibi/strollers-mvp/internal/infra/db"
)

type OperatorRepository struct {
	db db.DBTX
}

func NewOperatorRepository(dbtx db.DBTX) *OperatorRepository {
	return &OperatorRepository{db: dbtx}
}

func (r *OperatorRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	query, args, err := psql.Update("operators").
		Set("last_login_at", at).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build operator update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update operator last login", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("operator not found", nil, infra.KindNotFound)
	}

	return nil
}
