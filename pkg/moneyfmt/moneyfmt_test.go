package moneyfmt

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPesos(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "$0"},
		{300, "$300"},
		{49_999, "$49.999"},
		{50_000, "$50.000"},
		{300_000, "$300.000"},
		{1_500_000, "$1.500.000"},
	}
	for _, tc := range cases {
		got := Pesos(decimal.NewFromInt(tc.in))
		assert.Equal(t, tc.want, got, "formato de %d", tc.in)
	}
}

func TestPesos_RedondeaCentavos(t *testing.T) {
	got := Pesos(decimal.NewFromFloat(54_999.50))
	assert.Equal(t, "$55.000", got, "los centavos se redondean al peso")
}
