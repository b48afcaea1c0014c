// Package calc evaluates the key sequences typed on the calculator view.
//
// Keys are decimal digits and the operators + - * /. Division is true
// division. Results that are non-negative integers print exactly; anything
// else is rounded to three decimals and printed with six significant
// digits.
package calc

import (
	"errors"
	"fmt"
	"go/constant"
	"go/token"
	"go/types"
	"math"
	"strconv"
	"strings"
	"sync"
)

// MaxResultKeys is how many result characters fit on a 15-key deck next to
// the go back key.
const MaxResultKeys = 14

var (
	// ErrEmpty is returned when nothing was typed.
	ErrEmpty = errors.New("calc: empty expression")
	// ErrBadKey is returned for a key that is neither a digit nor an operator.
	ErrBadKey = errors.New("calc: unsupported key")
)

// Calculator collects pressed keys until Compute is called.
type Calculator struct {
	mu   sync.Mutex
	keys []string
}

// Push appends a key label.
func (c *Calculator) Push(key string) {
	c.mu.Lock()
	c.keys = append(c.keys, key)
	c.mu.Unlock()
}

// Expression returns the keys typed so far.
func (c *Calculator) Expression() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.keys, "")
}

// Compute evaluates the typed keys. On success the keys are cleared; on
// error they are kept so the user can continue typing.
func (c *Calculator) Compute() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	result, err := Eval(c.keys)
	if err != nil {
		return "", err
	}
	c.keys = c.keys[:0]
	return result, nil
}

// Eval evaluates a key sequence and formats the result.
func Eval(keys []string) (string, error) {
	expr, division, err := expression(keys)
	if err != nil {
		return "", err
	}
	tv, err := types.Eval(token.NewFileSet(), nil, token.NoPos, expr)
	if err != nil {
		return "", fmt.Errorf("calc: evaluate %q: %w", expr, err)
	}
	if tv.Value == nil {
		return "", fmt.Errorf("calc: %q is not a number", expr)
	}

	if !division && tv.Value.Kind() == constant.Int && constant.Sign(tv.Value) >= 0 {
		return tv.Value.ExactString(), nil
	}
	f, _ := constant.Float64Val(constant.ToFloat(tv.Value))
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "", fmt.Errorf("calc: %q overflows", expr)
	}
	return FormatFloat(f), nil
}

// FormatFloat rounds f to three decimals and prints it with six
// significant digits, trailing zeros dropped.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(math.Round(f*1000)/1000, 'g', 6, 64)
}

// expression turns keys into a constant expression. Numbers become float
// literals when the expression divides, so that 7/2 is 3.5.
func expression(keys []string) (string, bool, error) {
	if len(keys) == 0 {
		return "", false, ErrEmpty
	}
	division := false
	for _, k := range keys {
		if k == "/" {
			division = true
		}
	}

	var b strings.Builder
	var number strings.Builder
	flush := func() {
		if number.Len() == 0 {
			return
		}
		digits := strings.TrimLeft(number.String(), "0")
		if digits == "" {
			digits = "0"
		}
		b.WriteString(digits)
		if division {
			b.WriteString(".0")
		}
		number.Reset()
	}
	for _, k := range keys {
		switch {
		case isDigits(k):
			number.WriteString(k)
		case k == "+" || k == "-" || k == "*" || k == "/":
			flush()
			fmt.Fprintf(&b, " %s ", k)
		default:
			return "", false, fmt.Errorf("%w: %q", ErrBadKey, k)
		}
	}
	flush()
	return strings.TrimSpace(b.String()), division, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ResultKeys splits a result into one character per key, at most
// MaxResultKeys of them.
func ResultKeys(result string) []string {
	var keys []string
	for _, r := range result {
		if len(keys) == MaxResultKeys {
			break
		}
		keys = append(keys, string(r))
	}
	return keys
}
