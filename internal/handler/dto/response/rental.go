package response

import (
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/commands"
)

// CheckoutResponse configures the provider's hosted payment form on the
// selection screen.
type CheckoutResponse struct {
	PublishableKey    string   `json:"publishableKey"`
	Currency          string   `json:"currency"`
	AmountHalalas     int64    `json:"amountHalalas"`
	Description       string   `json:"description"`
	SupportedNetworks []string `json:"supportedNetworks"`
	Methods           []string `json:"methods"`
	CallbackURL       string   `json:"callbackUrl"`
}

func FromCheckoutSession(s *commands.CheckoutSession) *CheckoutResponse {
	return &CheckoutResponse{
		PublishableKey:    s.PublishableKey,
		Currency:          s.Currency,
		AmountHalalas:     s.AmountHalalas,
		Description:       s.Description,
		SupportedNetworks: s.SupportedNetworks,
		Methods:           s.Methods,
		CallbackURL:       s.CallbackURL,
	}
}
