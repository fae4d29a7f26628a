package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want Money
	}{
		{"49.75", 4975},
		{"0.25", 25},
		{"0.5", 50},
		{"200", 20000},
		{"200.00", 20000},
		{"0", 0},
		{"-1.05", -105},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMoney(tc.in)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		in   Money
		want string
	}{
		{4975, "49.75"},
		{25, "0.25"},
		{50, "0.50"},
		{20000, "200.00"},
		{0, "0.00"},
		{-105, "-1.05"},
	}

	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.String())
		})
	}
}

func TestCostFor(t *testing.T) {
	assert.Equal(t, Money(25), CostFor(PriorityNormal))
	assert.Equal(t, Money(50), CostFor(PriorityUrgent))
}
