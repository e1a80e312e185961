package request

import (
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/commands"
)

// Field names mirror what the kiosk front end sends.
type BeginRentalRequest struct {
	DeviceNo      string  `json:"deviceNo" binding:"required"`
	CartNo        *string `json:"cartNo,omitempty"`
	CartIndex     int     `json:"cartIndex" binding:"min=0"`
	SiteNo        *string `json:"siteNo,omitempty"`
	AmountHalalas int64   `json:"amountHalalas" binding:"required,gt=0"`
	Description   string  `json:"description,omitempty"`
}

func (r *BeginRentalRequest) ToParams() commands.BeginRentalParams {
	return commands.BeginRentalParams{
		DeviceNo:      r.DeviceNo,
		CartNo:        r.CartNo,
		CartIndex:     r.CartIndex,
		SiteNo:        r.SiteNo,
		AmountHalalas: r.AmountHalalas,
		Description:   r.Description,
	}
}
