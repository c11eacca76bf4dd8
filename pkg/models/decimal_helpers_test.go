package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestClampScore(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{-10, 0},
		{0, 0},
		{55.5, 55.5},
		{100, 100},
		{140, 100},
	}
	for _, c := range cases {
		got := ClampScore(decimal.NewFromFloat(c.in))
		if !got.Equal(decimal.NewFromFloat(c.want)) {
			t.Errorf("ClampScore(%.1f) = %s, want %.1f", c.in, got, c.want)
		}
	}
}
