package rental

import "errors"

var (
	ErrMissingDeviceNo  = errors.New("device number is required")
	ErrInvalidCartIndex = errors.New("cart index must be non-negative")
	ErrInvalidAmount    = errors.New("amount must be positive")
)

// Intent captures what the customer selected before being redirected to
// the payment provider. It is ephemeral session state, not authoritative:
// the orchestrator re-verifies everything server-side on return.
type Intent struct {
	deviceNo      string
	cartNo        *string
	cartIndex     int
	siteNo        *string
	amountHalalas int64
}

func NewIntent(deviceNo string, cartNo *string, cartIndex int, siteNo *string, amountHalalas int64) (*Intent, error) {
	if deviceNo == "" {
		return nil, ErrMissingDeviceNo
	}
	if cartIndex < 0 {
		return nil, ErrInvalidCartIndex
	}
	if amountHalalas <= 0 {
		return nil, ErrInvalidAmount
	}
	return &Intent{
		deviceNo:      deviceNo,
		cartNo:        cartNo,
		cartIndex:     cartIndex,
		siteNo:        siteNo,
		amountHalalas: amountHalalas,
	}, nil
}

func (i *Intent) DeviceNo() string     { return i.deviceNo }
func (i *Intent) CartNo() *string      { return i.cartNo }
func (i *Intent) CartIndex() int       { return i.cartIndex }
func (i *Intent) SiteNo() *string      { return i.siteNo }
func (i *Intent) AmountHalalas() int64 { return i.amountHalalas }
