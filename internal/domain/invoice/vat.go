package invoice

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// VAT exemption tags. Anything else in the vat field must parse as a
// percentage in [0,100].
const (
	VatTagNP = "NP" // not applicable
	VatTagOO = "OO" // reverse charge / exempt
)

const vatFormatMessage = "Must be a valid number (0-100) or NP or OO"

// VatValue is the tagged vat field of a line item: either one of the
// exemption tags or a numeric percentage. The zero value is a 0% rate.
type VatValue struct {
	tag  string
	rate decimal.Decimal
}

// VatRate builds a percentage vat value.
func VatRate(rate decimal.Decimal) VatValue { return VatValue{rate: rate} }

// VatExempt builds a tagged vat value ("NP" or "OO").
func VatExempt(tag string) VatValue { return VatValue{tag: tag} }

// ParseVat parses the boundary representation of a vat value. Numeric
// strings are accepted and behave as percentages ("20" is 20%). The range
// check [0,100] belongs to the validator, not here.
func ParseVat(s string) (VatValue, error) {
	s = strings.TrimSpace(s)
	if s == VatTagNP || s == VatTagOO {
		return VatValue{tag: s}, nil
	}
	rate, err := decimal.NewFromString(s)
	if err != nil {
		return VatValue{}, fmt.Errorf("%s", vatFormatMessage)
	}
	return VatValue{rate: rate}, nil
}

// IsExempt reports whether the value is one of the exemption tags, in which
// case the derived vatAmount is always zero.
func (v VatValue) IsExempt() bool { return v.tag != "" }

// Tag returns "NP"/"OO" for exempt values and "" for percentages.
func (v VatValue) Tag() string { return v.tag }

// Rate returns the percentage. Zero for exempt values.
func (v VatValue) Rate() decimal.Decimal {
	if v.IsExempt() {
		return decimal.Zero
	}
	return v.rate
}

// Equal reports value equality (tag and rate).
func (v VatValue) Equal(other VatValue) bool {
	if v.tag != other.tag {
		return false
	}
	if v.IsExempt() {
		return true
	}
	return v.rate.Equal(other.rate)
}

// String renders the display form: the tag itself, or the bare rate ("23").
func (v VatValue) String() string {
	if v.IsExempt() {
		return v.tag
	}
	return v.rate.String()
}

// MarshalJSON emits the tag as a JSON string and the rate as a JSON number,
// the exact wire shape the share link and the store round-trip.
func (v VatValue) MarshalJSON() ([]byte, error) {
	if v.IsExempt() {
		return json.Marshal(v.tag)
	}
	return v.rate.MarshalJSON()
}

// UnmarshalJSON accepts a JSON number, a numeric string, or an exemption
// tag.
func (v *VatValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		parsed, perr := ParseVat(s)
		if perr != nil {
			return perr
		}
		*v = parsed
		return nil
	}
	var rate decimal.Decimal
	if err := json.Unmarshal(b, &rate); err != nil {
		return fmt.Errorf("%s", vatFormatMessage)
	}
	*v = VatValue{rate: rate}
	return nil
}
