package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"

	"github.com/msmkdenis/yap-foodorder/internal/order/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("Jane Doe"))
	assert.True(t, ValidName("  J  "))
	assert.False(t, ValidName(""))
	assert.False(t, ValidName(" \t\n "))
}

func TestValidEmail(t *testing.T) {
	testCases := []struct {
		email string
		valid bool
	}{
		{"jane@x.com", true},
		{"a.b@c.d.e", true},
		{"jane@x", false},
		{"@x.com", false},
		{"jane@.com", false},
		{"jane.x.com", false},
		{"", false},
		{"jane@@x.com", false},
	}

	for _, test := range testCases {
		t.Run(test.email, func(t *testing.T) {
			assert.Equal(t, test.valid, ValidEmail(test.email))
		})
	}
}

func TestValidCard(t *testing.T) {
	testCases := []struct {
		card  string
		valid bool
	}{
		{"1234567812345678", true},
		{"1111222233334444", true},
		{"123", false},
		{"12345678123456ab", false},
		{"12345678123456789", false},
		{"1234 5678 1234 5678", false},
		{"１２３４５６７８１２３４５６７８", false},
		{"", false},
	}

	for _, test := range testCases {
		t.Run(test.card, func(t *testing.T) {
			assert.Equal(t, test.valid, ValidCard(test.card))
		})
	}
}

func TestValidExpiry(t *testing.T) {
	testCases := []struct {
		expiry string
		valid  bool
	}{
		{"08/27", true},
		{"01/00", true},
		{"12/99", true},
		{"13/27", false},
		{"00/27", false},
		{"8/27", false},
		{"08-27", false},
		{"08/2027", false},
		{"08/27 ", false},
	}

	for _, test := range testCases {
		t.Run(test.expiry, func(t *testing.T) {
			assert.Equal(t, test.valid, ValidExpiry(test.expiry))
		})
	}
}

func TestValidExpiryAllMonths(t *testing.T) {
	months := []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"}
	for _, m := range months {
		assert.True(t, ValidExpiry(m+"/30"), m)
	}
}

func TestValidCVV(t *testing.T) {
	assert.True(t, ValidCVV("123"))
	assert.True(t, ValidCVV("000"))
	assert.False(t, ValidCVV("12"))
	assert.False(t, ValidCVV("1234"))
	assert.False(t, ValidCVV("12a"))
}

func TestValidateReportsEveryFailedField(t *testing.T) {
	v := NewValidator(false)

	assert.Empty(t, v.Validate(model.OrderForm{
		Name:       "Jane Doe",
		Email:      "jane@x.com",
		CardNumber: "1111222233334444",
		Expiry:     "08/27",
		CVV:        "123",
	}))

	assert.Equal(t,
		[]string{FieldName, FieldEmail, FieldCardNumber, FieldExpiry, FieldCVV},
		v.Validate(model.OrderForm{}),
	)

	assert.Equal(t,
		[]string{FieldEmail, FieldCVV},
		v.Validate(model.OrderForm{
			Name:       "Jane Doe",
			Email:      "jane",
			CardNumber: "1111222233334444",
			Expiry:     "08/27",
			CVV:        "12",
		}),
	)
}

func TestValidateLuhn(t *testing.T) {
	form := model.OrderForm{
		Name:       "Jane Doe",
		Email:      "jane@x.com",
		CardNumber: "1234567812345678",
		Expiry:     "08/27",
		CVV:        "123",
	}

	assert.Empty(t, NewValidator(false).Validate(form))
	assert.Equal(t, []string{FieldCardNumber}, NewValidator(true).Validate(form))

	form.CardNumber = "4111111111111111"
	assert.Empty(t, NewValidator(true).Validate(form))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "CVV must be exactly 3 digits.", Message(FieldCVV))
	assert.Equal(t, "Invalid phone.", Message("phone"))
}
