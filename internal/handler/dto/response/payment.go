package response

import (
	"time"

	"github.com/jinzhu/copier"

	"github.com/maysqunaibi/strollers-mvp/internal/usecase/queries"
)

type PaymentResponse struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	Mode          string    `json:"mode"`
	Scheme        *string   `json:"scheme,omitempty"`
	AmountHalalas int64     `json:"amountHalalas"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func FromPaymentView(view *queries.PaymentView) *PaymentResponse {
	var resp PaymentResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromPaymentViews(views []*queries.PaymentView) []*PaymentResponse {
	out := make([]*PaymentResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromPaymentView(v))
	}
	return out
}
