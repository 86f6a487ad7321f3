package vo

import (
	"encoding/json"
	"strings"

	"github.com/jcmexdev/storefront/internal/core/fault"
)

// PaymentTag discriminates the payment method union.
type PaymentTag string

const (
	PaymentPIX    PaymentTag = "PIX"
	PaymentCard   PaymentTag = "CARD"
	PaymentBoleto PaymentTag = "BOLETO"
)

// PaymentDetails is the sealed interface of the union. Only the three detail
// structs below implement it, so a switch over the concrete types plus a
// default arm is exhaustive.
type PaymentDetails interface {
	paymentTag() PaymentTag
}

type PIXDetails struct {
	Key string `json:"key"`
}

type CardDetails struct {
	Number     string `json:"number"`
	HolderName string `json:"holder_name"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

type BoletoDetails struct {
	Document string `json:"document"`
}

func (PIXDetails) paymentTag() PaymentTag    { return PaymentPIX }
func (CardDetails) paymentTag() PaymentTag   { return PaymentCard }
func (BoletoDetails) paymentTag() PaymentTag { return PaymentBoleto }

// PaymentMethod pairs a tag with the detail payload of that tag. It can only
// be built through NewPaymentMethod, so a held value is always consistent.
type PaymentMethod struct {
	tag     PaymentTag
	details PaymentDetails
}

// NewPaymentMethod validates that details is present, matches the tag, and
// carries the fields that tag requires.
func NewPaymentMethod(tag PaymentTag, details PaymentDetails) (PaymentMethod, error) {
	if details == nil {
		return PaymentMethod{}, fault.Validation("invalid_payment", "payment details are required for method %s", tag)
	}
	if details.paymentTag() != tag {
		return PaymentMethod{}, fault.Validation("invalid_payment", "details payload does not match method %s", tag)
	}

	switch d := details.(type) {
	case PIXDetails:
		if strings.TrimSpace(d.Key) == "" {
			return PaymentMethod{}, fault.Validation("invalid_payment", "pix key is required")
		}
	case CardDetails:
		if d.Number == "" || d.HolderName == "" || d.Expiry == "" || d.CVV == "" {
			return PaymentMethod{}, fault.Validation("invalid_payment", "card number, holder, expiry and cvv are required")
		}
	case BoletoDetails:
		if strings.TrimSpace(d.Document) == "" {
			return PaymentMethod{}, fault.Validation("invalid_payment", "boleto document is required")
		}
	default:
		return PaymentMethod{}, fault.Validation("invalid_payment", "unknown payment method %q", tag)
	}

	return PaymentMethod{tag: tag, details: details}, nil
}

// ParsePaymentDetails decodes a raw detail payload for the given tag. This is
// the single place inbound transports turn untyped JSON into a union member.
func ParsePaymentDetails(tag PaymentTag, raw json.RawMessage) (PaymentDetails, error) {
	if len(raw) == 0 {
		return nil, fault.Validation("invalid_payment", "payment details are required for method %s", tag)
	}

	var (
		details PaymentDetails
		err     error
	)
	switch tag {
	case PaymentPIX:
		var d PIXDetails
		err = json.Unmarshal(raw, &d)
		details = d
	case PaymentCard:
		var d CardDetails
		err = json.Unmarshal(raw, &d)
		details = d
	case PaymentBoleto:
		var d BoletoDetails
		err = json.Unmarshal(raw, &d)
		details = d
	default:
		return nil, fault.Validation("invalid_payment", "unknown payment method %q", tag)
	}
	if err != nil {
		return nil, fault.Validation("invalid_payment", "malformed payment details for method %s", tag)
	}
	return details, nil
}

func (p PaymentMethod) Tag() PaymentTag {
	return p.tag
}

func (p PaymentMethod) Details() PaymentDetails {
	return p.details
}

// paymentMethodJSON is the storage/wire shape of the union.
type paymentMethodJSON struct {
	Method  PaymentTag      `json:"method"`
	Details json.RawMessage `json:"details"`
}

func (p PaymentMethod) MarshalJSON() ([]byte, error) {
	details, err := json.Marshal(p.details)
	if err != nil {
		return nil, err
	}
	return json.Marshal(paymentMethodJSON{Method: p.tag, Details: details})
}

func (p *PaymentMethod) UnmarshalJSON(data []byte) error {
	var wire paymentMethodJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	details, err := ParsePaymentDetails(wire.Method, wire.Details)
	if err != nil {
		return err
	}
	parsed, err := NewPaymentMethod(wire.Method, details)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
