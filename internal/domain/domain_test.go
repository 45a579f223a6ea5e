package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClientFullName(t *testing.T) {
	c := &Client{FirstName: "Jan", LastName: "Botha"}
	assert.Equal(t, "Jan Botha", c.FullName())
}

func TestGunLicenceDescription(t *testing.T) {
	tests := []struct {
		name    string
		licence *GunLicence
		want    string
	}{
		{"Full", &GunLicence{Make: "CZ", Type: "P-10 C", Caliber: "9mm"}, "CZ P-10 C 9mm"},
		{"NoCaliber", &GunLicence{Make: "CZ", Type: "P-10 C"}, "CZ P-10 C"},
		{"MissingMake", &GunLicence{Type: "P-10 C"}, ""},
		{"Nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.licence.Description())
		})
	}
}

func TestLoanHasPenalties(t *testing.T) {
	assert.False(t, (&Loan{}).HasPenalties())
	assert.False(t, (&Loan{Penalties: decimal.Zero}).HasPenalties())
	assert.True(t, (&Loan{Penalties: decimal.NewFromInt(900)}).HasPenalties())
}
