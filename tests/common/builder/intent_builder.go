//go:build unit

package builder

import (
	"github.com/maysqunaibi/strollers-mvp/internal/domain/rental"
)

type IntentBuilder struct {
	DeviceNo      string
	CartNo        *string
	CartIndex     int
	SiteNo        *string
	AmountHalalas int64
}

func NewIntentBuilder() *IntentBuilder {
	cartNo := "C-012"
	siteNo := "S-001"
	return &IntentBuilder{
		DeviceNo:      "D-100",
		CartNo:        &cartNo,
		CartIndex:     3,
		SiteNo:        &siteNo,
		AmountHalalas: 1500,
	}
}

func (b *IntentBuilder) With(mutate func(*IntentBuilder)) *IntentBuilder {
	mutate(b)
	return b
}

func (b *IntentBuilder) Build() (*rental.Intent, error) {
	return rental.NewIntent(b.DeviceNo, b.CartNo, b.CartIndex, b.SiteNo, b.AmountHalalas)
}

func (b *IntentBuilder) MustBuild() *rental.Intent {
	intent, err := b.Build()
	if err != nil {
		panic(err)
	}
	return intent
}
