//go:build unit

package rental_test

import (
	"testing"

	"github.com/maysqunaibi/strollers-mvp/internal/domain/rental"
	"github.com/maysqunaibi/strollers-mvp/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIntent(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewIntentBuilder()
		actual, err := b.Build()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.Equal(t, b.DeviceNo, actual.DeviceNo())
		assert.Equal(t, b.CartIndex, actual.CartIndex())
		assert.Equal(t, b.AmountHalalas, actual.AmountHalalas())
		require.NotNil(t, actual.CartNo())
		assert.Equal(t, *b.CartNo, *actual.CartNo())
	})

	cases := []struct {
		name   string
		mutate func(*builder.IntentBuilder)
		errIs  error
	}{
		{
			name:   "empty device number",
			mutate: func(b *builder.IntentBuilder) { b.DeviceNo = "" },
			errIs:  rental.ErrMissingDeviceNo,
		},
		{
			name:   "negative cart index",
			mutate: func(b *builder.IntentBuilder) { b.CartIndex = -5 },
			errIs:  rental.ErrInvalidCartIndex,
		},
		{
			name:   "zero amount",
			mutate: func(b *builder.IntentBuilder) { b.AmountHalalas = 0 },
			errIs:  rental.ErrInvalidAmount,
		},
		{
			name: "optional fields may be nil",
			mutate: func(b *builder.IntentBuilder) {
				b.CartNo = nil
				b.SiteNo = nil
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			actual, err := builder.NewIntentBuilder().With(tc.mutate).Build()
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, actual)
		})
	}
}
