package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// DefaultSettings must be a complete object: it is served as-is whenever the
// stored settings cannot be loaded.
func TestDefaultSettingsComplete(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, "22644386852", s.WhatsAppNumber)
	assert.Equal(t, 20, s.TimerMinutes)
	assert.Equal(t, 10.0, s.HousingDepositPct)
	assert.Equal(t, 15.0, s.CommercialDepositPct)
	assert.Equal(t, "Commerce", s.CommercialMarker)
	assert.NotEmpty(t, s.ConditionsText)
	assert.NotEmpty(t, s.ContactPhone)
	assert.NotEmpty(t, s.ContactEmail)
	assert.NotEmpty(t, s.ContactAddress)
	require.Len(t, s.Providers, 2)
	require.NotEmpty(t, s.Sites)

	orange := s.Provider(PaymentOrangeMoney)
	require.NotNil(t, orange)
	assert.Equal(t, "*144*10#", orange.USSDCode)
	assert.Equal(t, "056732", orange.MerchantCode)
	assert.NotEmpty(t, orange.Steps)

	moov := s.Provider(PaymentMoovMoney)
	require.NotNil(t, moov)
	assert.Equal(t, "*555*6#", moov.USSDCode)
	assert.Equal(t, "041209", moov.MerchantCode)

	assert.Nil(t, s.Provider("WAVE"))
}

func TestDepositPct(t *testing.T) {
	s := DefaultSettings()

	tests := []struct {
		category string
		want     float64
	}{
		{"Habitation Ordinaire", 10},
		{"Logement Social", 10},
		{"Commerce Voie Bitumée", 15},
		{"Commerce Voie Non Bitumée", 15},
		{"", 10},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, s.DepositPct(tt.category), tt.category)
	}

	// without a marker everything falls back to the housing rate
	s.CommercialMarker = ""
	assert.Equal(t, 10.0, s.DepositPct("Commerce Voie Bitumée"))
}

func TestProviderInstructions(t *testing.T) {
	s := DefaultSettings()
	orange := s.Provider(PaymentOrangeMoney)
	require.NotNil(t, orange)

	steps := orange.Instructions(50000)
	require.Len(t, steps, len(orange.Steps))
	assert.Contains(t, steps[2], "50 000")
	for _, step := range steps {
		assert.NotContains(t, step, AmountPlaceholder)
	}

	// the template itself is untouched
	assert.Contains(t, orange.Steps[2], AmountPlaceholder)
}

func TestFormatFCFA(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0"},
		{950, "950"},
		{1000, "1 000"},
		{50000, "50 000"},
		{2357649, "2 357 649"},
		{1000000000, "1 000 000 000"},
		{-50000, "-50 000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFCFA(tt.amount))
	}
}
