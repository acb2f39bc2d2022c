package stock

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseQuantity_ValidInputs(t *testing.T) {
	cases := map[string]decimal.Decimal{
		"10":      decimal.NewFromInt(10),
		"-3.5":    decimal.NewFromFloat(-3.5),
		"0":       decimal.Zero,
		"  2.25 ": decimal.NewFromFloat(2.25),
	}
	for raw, want := range cases {
		got, err := ParseQuantity(raw)
		if err != nil {
			t.Errorf("ParseQuantity(%q) returned error: %v", raw, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseQuantity(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestParseQuantity_InvalidInputs(t *testing.T) {
	for _, raw := range []string{"", "abc", "10kg", "1.2.3", "map[foo:1]"} {
		_, err := ParseQuantity(raw)
		if err == nil {
			t.Errorf("ParseQuantity(%q) expected error", raw)
			continue
		}
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("ParseQuantity(%q) error = %v, want ErrInvalidQuantity", raw, err)
		}
	}
}
