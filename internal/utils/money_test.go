package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Money
		wantErr bool
	}{
		{name: "whole amount", input: "450", want: 45000},
		{name: "two decimal places", input: "450.50", want: 45050},
		{name: "one decimal place", input: "450.5", want: 45050},
		{name: "smallest valid amount", input: "0.01", want: 1},
		{name: "with surrounding spaces", input: " 120.00 ", want: 12000},
		{name: "zero rejected", input: "0", wantErr: true},
		{name: "zero with decimals rejected", input: "0.00", wantErr: true},
		{name: "negative rejected", input: "-5", wantErr: true},
		{name: "three decimal places rejected", input: "10.005", wantErr: true},
		{name: "not a number", input: "ten", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "missing whole part", input: ".50", wantErr: true},
		{name: "explicit plus rejected", input: "+10", wantErr: true},
		{name: "signed fraction rejected", input: "4.-5", wantErr: true},
		{name: "plus-signed fraction rejected", input: "4.+5", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMoney(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "450.00", Money(45000).String())
	assert.Equal(t, "0.05", Money(5).String())
	assert.Equal(t, "-12.30", Money(-1230).String())
}

func TestMoneyFromFloat(t *testing.T) {
	assert.Equal(t, Money(45050), MoneyFromFloat(450.50))
	assert.Equal(t, Money(0), MoneyFromFloat(-1))
	assert.Equal(t, Money(10), MoneyFromFloat(0.1))
}
