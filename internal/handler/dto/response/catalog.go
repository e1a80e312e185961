package response

import (
	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"github.com/maysqunaibi/strollers-mvp/internal/usecase/queries"
)

type PackageResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	AmountHalalas   int64     `json:"amountHalalas"`
	DurationMinutes int32     `json:"durationMinutes"`
}

func FromPackageView(view *queries.PackageView) *PackageResponse {
	var resp PackageResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromPackageViews(views []*queries.PackageView) []*PackageResponse {
	out := make([]*PackageResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromPackageView(v))
	}
	return out
}
