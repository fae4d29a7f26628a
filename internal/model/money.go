package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Money is a fixed-point amount in hundredths of the account currency.
type Money int64

const (
	CostNormal Money = 25
	CostUrgent Money = 50
)

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	parsed, err := ParseMoney(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMoney accepts decimal strings such as "49.75", "0.5" or "200".
func ParseMoney(s string) (Money, error) {
	whole, frac, _ := strings.Cut(s, ".")
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if frac == "" {
		return Money(units * 100), nil
	}
	if len(frac) > 2 {
		frac = frac[:2]
	}
	for len(frac) < 2 {
		frac += "0"
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if units < 0 || strings.HasPrefix(whole, "-") {
		cents = -cents
	}
	return Money(units*100 + cents), nil
}
