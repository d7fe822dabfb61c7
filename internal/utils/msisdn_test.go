package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kahawapay/kahawapay_backend/internal/utils"
)

func TestNormalizeMSISDN(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain digits", "254712345678", "254712345678"},
		{"plus prefix", "+254712345678", "254712345678"},
		{"dashes and spaces", "+254-712 345 678", "254712345678"},
		{"letters dropped", "254abc712345678", "254712345678"},
		{"empty", "", ""},
		{"only punctuation", "+-  ()", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, utils.NormalizeMSISDN(tt.in))
		})
	}
}

func TestIsValidMSISDN(t *testing.T) {
	assert.True(t, utils.IsValidMSISDN("254712345678"))
	assert.True(t, utils.IsValidMSISDN("+254 712 345 678"))
	assert.False(t, utils.IsValidMSISDN("12345"))
	assert.False(t, utils.IsValidMSISDN("2547123456789")) // 13 digits
	assert.False(t, utils.IsValidMSISDN("25471234567"))   // 11 digits
	assert.False(t, utils.IsValidMSISDN(""))
}
