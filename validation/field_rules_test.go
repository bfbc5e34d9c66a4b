package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiredRule(t *testing.T) {
	assert.NoError(t, RequiredRule.Validator("value"))
	assert.Error(t, RequiredRule.Validator(""))
	assert.Error(t, RequiredRule.Validator("   "))
	assert.Error(t, RequiredRule.Validator(nil))
}

func TestEmailRule(t *testing.T) {
	assert.NoError(t, EmailRule.Validator("citizen@example.com"))
	assert.Error(t, EmailRule.Validator("citizen@"))
	assert.Error(t, EmailRule.Validator("not-an-email"))
	assert.Error(t, EmailRule.Validator(42))
}

func TestPhoneRule(t *testing.T) {
	assert.NoError(t, PhoneRule.Validator("+91 98765 43210"))
	assert.NoError(t, PhoneRule.Validator("04412345678"))
	assert.Error(t, PhoneRule.Validator("call me"))
	assert.Error(t, PhoneRule.Validator("123"))
}

func TestCreateMaxLengthRule(t *testing.T) {
	rule := CreateMaxLengthRule(5)

	assert.NoError(t, rule.Validator("12345"))
	assert.Error(t, rule.Validator("123456"))
}

func TestCreateEnumRule(t *testing.T) {
	rule := CreateEnumRule([]string{"OPEN", "RESOLVED"})

	assert.NoError(t, rule.Validator("OPEN"))
	assert.Error(t, rule.Validator("CLOSED"))
}

func TestValidateField(t *testing.T) {
	err := ValidateField("email", "bad", EmailRule)

	assert.ErrorContains(t, err, "email")
}

func TestValidateRequired(t *testing.T) {
	assert.NoError(t, ValidateRequired(map[string]string{"name": "Asha"}))

	err := ValidateRequired(map[string]string{"name": ""})
	assert.ErrorContains(t, err, "name is required")
}
