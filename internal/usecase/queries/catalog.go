package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/maysqunaibi/strollers-mvp/internal/infra"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/errs"
)

var ErrPackageNotFound = errs.New("package not found")

type CatalogQueries interface {
	GetPackage(ctx context.Context, id uuid.UUID) (*PackageView, error)
	ListActivePackages(ctx context.Context) ([]*PackageView, error)
}

type PackageReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PackageView, error)
	ListActive(ctx context.Context) ([]*PackageView, error)
}

type catalogQueriesImpl struct {
	readStore PackageReadStore
}

func NewCatalogQueries(readStore PackageReadStore) CatalogQueries {
	return &catalogQueriesImpl{readStore: readStore}
}

func (q *catalogQueriesImpl) GetPackage(ctx context.Context, id uuid.UUID) (*PackageView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, err
	}
	if !view.IsActive {
		return nil, ErrPackageNotFound
	}
	return view, nil
}

func (q *catalogQueriesImpl) ListActivePackages(ctx context.Context) ([]*PackageView, error) {
	return q.readStore.ListActive(ctx)
}
