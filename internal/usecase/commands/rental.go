package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/maysqunaibi/strollers-mvp/internal/domain/rental"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/config"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/errs"
)

// CheckoutSession is everything the selection screen needs to hand the
// customer over to the hosted payment form.
type CheckoutSession struct {
	PublishableKey    string
	Currency          string
	AmountHalalas     int64
	Description       string
	SupportedNetworks []string
	Methods           []string
	CallbackURL       string
}

type BeginRentalParams struct {
	DeviceNo      string
	CartNo        *string
	CartIndex     int
	SiteNo        *string
	AmountHalalas int64
	Description   string
}

type RentalCommands interface {
	BeginRental(ctx context.Context, sessionID string, params BeginRentalParams) (*CheckoutSession, error)
	GetIntent(ctx context.Context, sessionID string) (*rental.Intent, error)
	AbandonRental(ctx context.Context, sessionID string) error
}

type rentalCommandsImpl struct {
	intents  IntentStore
	checkout config.CheckoutConfig
	server   config.ServerConfig
}

func NewRentalCommands(intents IntentStore, cfg config.Config) RentalCommands {
	return &rentalCommandsImpl{
		intents:  intents,
		checkout: cfg.Checkout,
		server:   cfg.Server,
	}
}

// BeginRental stashes the customer's selection in their session slot and
// returns the checkout configuration for the provider's hosted form. The
// slot overwrites any earlier pending selection for the same session.
func (r *rentalCommandsImpl) BeginRental(ctx context.Context, sessionID string, params BeginRentalParams) (*CheckoutSession, error) {
	intent, err := rental.NewIntent(
		params.DeviceNo, params.CartNo, params.CartIndex,
		params.SiteNo, params.AmountHalalas,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if err := r.intents.Put(ctx, sessionID, intent); err != nil {
		return nil, err
	}

	description := params.Description
	if description == "" {
		description = fmt.Sprintf("Stroller rental at device %s", params.DeviceNo)
	}

	return &CheckoutSession{
		PublishableKey:    r.checkout.PublishableKey,
		Currency:          r.checkout.Currency,
		AmountHalalas:     params.AmountHalalas,
		Description:       description,
		SupportedNetworks: r.checkout.SupportedNetworks,
		Methods:           r.checkout.Methods,
		CallbackURL:       r.callbackURL(),
	}, nil
}

func (r *rentalCommandsImpl) GetIntent(ctx context.Context, sessionID string) (*rental.Intent, error) {
	return r.intents.Get(ctx, sessionID)
}

// AbandonRental discards the pending selection when the customer backs
// out before paying.
func (r *rentalCommandsImpl) AbandonRental(ctx context.Context, sessionID string) error {
	return r.intents.Clear(ctx, sessionID)
}

func (r *rentalCommandsImpl) callbackURL() string {
	base := strings.TrimSuffix(r.server.PublicBaseURL, "/")
	path := r.checkout.ReturnPath
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
