package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "5512345678", NormalizePhone("55 1234 5678"))
	assert.Equal(t, "5512345678", NormalizePhone("(551) 234-5678"))
	assert.Equal(t, "5512345678", NormalizePhone("5512345678"))
	assert.Equal(t, "", NormalizePhone("sin número"))
}

func TestIsValidPhone(t *testing.T) {
	assert.True(t, IsValidPhone("5512345678"))
	assert.True(t, IsValidPhone("(551) 234-5678"))
	assert.False(t, IsValidPhone("551234567"))    // 9 dígitos
	assert.False(t, IsValidPhone("55123456789"))  // 11 dígitos
	assert.False(t, IsValidPhone(""))
}

func TestFormatPhoneNumber(t *testing.T) {
	assert.Equal(t, "(551) 234-5678", FormatPhoneNumber("5512345678"))

	// entradas que no normalizan a 10 dígitos quedan igual
	assert.Equal(t, "12345", FormatPhoneNumber("12345"))
	assert.Equal(t, "", FormatPhoneNumber(""))
}

func TestFormatPhoneNumber_Idempotent(t *testing.T) {
	inputs := []string{
		"5512345678",
		"55 1234 5678",
		"(551) 234-5678",
		"551-234-5678",
		"0000000000",
		"9999999999",
	}

	for _, in := range inputs {
		once := FormatPhoneNumber(in)
		twice := FormatPhoneNumber(once)
		assert.Equal(t, once, twice, "format(format(%q)) != format(%q)", in, in)
	}
}
