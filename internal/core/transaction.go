package core

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

const (
	TypeIncome  TxType = "INCOME"
	TypeExpense TxType = "EXPENSE"

	// DefaultCategory is the bucket for transactions with no category label.
	DefaultCategory = "Other"
)

type (
	// TxType is the transaction direction. The set is closed: INCOME or EXPENSE.
	TxType string

	// Money is a currency amount in whole cents.
	Money struct {
		Cents int64
	}

	// Transaction is a single dated income or expense record. Records come
	// from the transaction source as-is; the aggregators never mutate them.
	Transaction struct {
		ID       string `json:"id"`
		Date     string `json:"date"` // YYYY-MM-DD
		Category string `json:"category"`
		Type     TxType `json:"type"`
		Amount   Money  `json:"amount"`
		Note     string `json:"note,omitempty"`
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrEmptyCategory   = errors.New("empty category")
	ErrInvalidMonthKey = errors.New("invalid month key")
)

// ParseTxType validates a raw type label against the closed set.
func ParseTxType(s string) (TxType, error) {
	switch TxType(strings.TrimSpace(s)) {
	case TypeIncome:
		return TypeIncome, nil
	case TypeExpense:
		return TypeExpense, nil
	default:
		return "", ErrInvalidType
	}
}

// ParseDate validates a YYYY-MM-DD calendar date.
func ParseDate(s string) (string, error) {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return "", ErrInvalidDate
	}
	return s, nil
}

// Dollars returns the decimal value for display. Keep calculations in cents.
func (m Money) Dollars() float64 {
	return float64(m.Cents) / 100.0
}

func (m Money) String() string {
	neg := m.Cents < 0
	c := m.Cents
	if neg {
		c = -c
	}
	s := strconv.FormatInt(c/100, 10) + "." + strconv.FormatInt(c%100/10, 10) + strconv.FormatInt(c%10, 10)
	if neg {
		return "-" + s
	}
	return s
}

// MarshalJSON emits the amount as a plain decimal number, matching the wire
// shape the dashboard consumes ("amount": 20.5).
func (m Money) MarshalJSON() ([]byte, error) {
	return strconv.AppendFloat(nil, m.Dollars(), 'f', -1, 64), nil
}

// UnmarshalJSON accepts a JSON number or a quoted decimal string. A value
// that fails to parse as a finite non-negative number degrades to zero cents;
// unmarshalling a malformed amount is never an error, so a bad record stays
// in the list and only drops out of the sums.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(bytes.TrimSpace(data), `"`))
	if s == "null" || s == "" {
		m.Cents = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		m.Cents = 0
		return nil
	}
	m.Cents = int64(math.Round(v * 100))
	return nil
}

// ParseAmount converts a decimal string to Money with half-up rounding on the
// third decimal place. Both dot and comma separators are accepted. Unlike the
// lenient JSON path, this parser reports malformed and negative input, so the
// callers that gate mutations (goal creation, saved-amount commits) can
// decline them. Zero is a valid amount here.
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return Money{}, ErrInvalidAmount
	}
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return Money{Cents: iv*100 + fracCents}, nil
}

// NormalizeAmountInput strips leading zeros from a multi-digit integer
// portion of a raw numeric edit ("007" -> "7"). A bare "0" and values with a
// decimal point stay intact: the zero is only dropped when the next character
// is another digit.
func NormalizeAmountInput(s string) string {
	s = strings.TrimSpace(s)
	for len(s) > 1 && s[0] == '0' && s[1] >= '0' && s[1] <= '9' {
		s = s[1:]
	}
	return s
}
