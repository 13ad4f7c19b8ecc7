// Package validation holds the format rules of the order form fields.
//
// Every check is pure. Inputs are validated as literal text, only the name is
// trimmed before it is checked.
package validation

import (
	"regexp"
	"strings"

	"github.com/ShiraazMoollatjie/goluhn"

	"github.com/msmkdenis/yap-foodorder/internal/order/model"
)

const (
	FieldName       = "name"
	FieldEmail      = "email"
	FieldCardNumber = "card_number"
	FieldExpiry     = "expiry"
	FieldCVV        = "cvv"
)

var (
	emailPattern  = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/[0-9]{2}$`)
)

var messages = map[string]string{
	FieldName:       "Please enter your full name.",
	FieldEmail:      "Invalid email format.",
	FieldCardNumber: "Credit card number must be 16 digits.",
	FieldExpiry:     "Expiry date must be in MM/YY format (e.g., 08/27).",
	FieldCVV:        "CVV must be exactly 3 digits.",
}

func ValidName(s string) bool {
	return len(strings.TrimSpace(s)) > 0
}

// ValidEmail is a loose local@domain.tld shape check, not RFC 5322.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func ValidCard(s string) bool {
	return len(s) == 16 && digitsOnly(s)
}

func ValidExpiry(s string) bool {
	return expiryPattern.MatchString(s)
}

func ValidCVV(s string) bool {
	return len(s) == 3 && digitsOnly(s)
}

// ValidLuhn reports whether a card number that already passed ValidCard also
// carries a correct Luhn check digit.
func ValidLuhn(s string) bool {
	return goluhn.Validate(s) == nil
}

// Validator runs all field checks of an order form.
type Validator struct {
	luhnCheck bool
}

func NewValidator(luhnCheck bool) *Validator {
	return &Validator{luhnCheck: luhnCheck}
}

// Validate evaluates every rule, even after a failure, and returns the names of
// the failing fields in form order. An empty result means the form is valid.
func (v *Validator) Validate(form model.OrderForm) []string {
	checks := []struct {
		field string
		ok    bool
	}{
		{FieldName, ValidName(form.Name)},
		{FieldEmail, ValidEmail(form.Email)},
		{FieldCardNumber, ValidCard(form.CardNumber) && (!v.luhnCheck || ValidLuhn(form.CardNumber))},
		{FieldExpiry, ValidExpiry(form.Expiry)},
		{FieldCVV, ValidCVV(form.CVV)},
	}

	var failed []string
	for _, c := range checks {
		if !c.ok {
			failed = append(failed, c.field)
		}
	}
	return failed
}

// Message returns the user facing explanation of a failed field.
func Message(field string) string {
	if m, ok := messages[field]; ok {
		return m
	}
	return "Invalid " + field + "."
}

func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
