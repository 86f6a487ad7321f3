package vo_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront/internal/core/domain/vo"
	"github.com/jcmexdev/storefront/internal/core/fault"
)

func TestNewPaymentMethod(t *testing.T) {
	tests := []struct {
		name    string
		tag     vo.PaymentTag
		details vo.PaymentDetails
		wantErr bool
	}{
		{"pix", vo.PaymentPIX, vo.PIXDetails{Key: "ana@example.com"}, false},
		{"card", vo.PaymentCard, vo.CardDetails{Number: "4111111111111111", HolderName: "ANA", Expiry: "12/30", CVV: "123"}, false},
		{"boleto", vo.PaymentBoleto, vo.BoletoDetails{Document: "12345678900"}, false},
		{"nil details", vo.PaymentPIX, nil, true},
		{"mismatched details", vo.PaymentPIX, vo.CardDetails{Number: "4111", HolderName: "ANA", Expiry: "12/30", CVV: "123"}, true},
		{"empty pix key", vo.PaymentPIX, vo.PIXDetails{}, true},
		{"incomplete card", vo.PaymentCard, vo.CardDetails{Number: "4111"}, true},
		{"empty boleto document", vo.PaymentBoleto, vo.BoletoDetails{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payment, err := vo.NewPaymentMethod(tt.tag, tt.details)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, fault.KindValidation, fault.KindOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.tag, payment.Tag())
			assert.Equal(t, tt.details, payment.Details())
		})
	}
}

func TestParsePaymentDetails(t *testing.T) {
	details, err := vo.ParsePaymentDetails(vo.PaymentCard, json.RawMessage(`{"number":"4111111111111111","holder_name":"ANA","expiry":"12/30","cvv":"123"}`))
	require.NoError(t, err)
	card, ok := details.(vo.CardDetails)
	require.True(t, ok)
	assert.Equal(t, "ANA", card.HolderName)

	_, err = vo.ParsePaymentDetails("CHECK", json.RawMessage(`{}`))
	require.Error(t, err)
	assert.Equal(t, fault.KindValidation, fault.KindOf(err))

	_, err = vo.ParsePaymentDetails(vo.PaymentPIX, nil)
	require.Error(t, err)
}

func TestPaymentMethod_JSONRoundTrip(t *testing.T) {
	original, err := vo.NewPaymentMethod(vo.PaymentBoleto, vo.BoletoDetails{Document: "12345678900"})
	require.NoError(t, err)

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded vo.PaymentMethod
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, vo.PaymentBoleto, decoded.Tag())
	assert.Equal(t, vo.BoletoDetails{Document: "12345678900"}, decoded.Details())
}
