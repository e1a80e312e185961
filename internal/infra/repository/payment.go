package repository

import (
	"context"
	"time"

	"github.com/maysqunaibi/strollers-mvp/internal/infra"
	"github.com/maysqunaibi/strollers-mvp/internal/infra/db"
	"github.com/maysqunaibi/strollers-mvp/internal/infra/provider"
)

type PaymentRepository struct {
	db db.DBTX
}

func NewPaymentRepository(dbtx db.DBTX) *PaymentRepository {
	return &PaymentRepository{db: dbtx}
}

// Upsert stores the provider's view of a payment. Status is monotonic:
// a row that already reached paid/failed/canceled is never downgraded,
// only its diagnostic payload is refreshed.
func (r *PaymentRepository) Upsert(ctx context.Context, tx db.DBTX, p *provider.Payment) error {
	var providerCreatedAt *time.Time
	if !p.CreatedAt.IsZero() {
		t := p.CreatedAt
		providerCreatedAt = &t
	}

	query, args, err := psql.Insert("payments").
		Columns("id", "status", "mode", "scheme", "amount_halalas", "raw_metadata", "provider_created_at").
		Values(p.ID, p.Status.String(), p.Mode, p.Scheme, p.AmountHalalas, []byte(p.Raw), providerCreatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			status = CASE WHEN payments.status = 'pending' THEN EXCLUDED.status ELSE payments.status END,
			mode = EXCLUDED.mode,
			scheme = EXCLUDED.scheme,
			raw_metadata = EXCLUDED.raw_metadata,
			updated_at = now()`).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build payment upsert", err)
	}

	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to upsert payment", err)
	}

	return nil
}
