package calc

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(s string) []string {
	return strings.Split(s, "")
}

func TestEval(t *testing.T) {
	tests := []struct {
		keys string
		want string
	}{
		{"12+3", "15"},
		{"7/2", "3.5"},
		{"4/2", "2"},
		{"1/3", "0.333"},
		{"2/3", "0.667"},
		{"2-5", "-3"},
		{"2*-3", "-6"},
		{"007+1", "8"},
		{"9999999*9999999", "99999980000001"},
		{"10000000/3", "3.33333e+06"},
		{"1+2*3", "7"},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			got, err := Eval(keys(tt.keys))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		is   error
	}{
		{"empty", nil, ErrEmpty},
		{"bad key", []string{"1", "x"}, ErrBadKey},
		{"division by zero", keys("7/0"), nil},
		{"dangling operator", keys("5+"), nil},
		{"double star", keys("2**3"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Eval(tt.keys)
			require.Error(t, err)
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("Eval() error = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestCalculator_Compute(t *testing.T) {
	var c Calculator
	for _, k := range keys("6*7") {
		c.Push(k)
	}
	assert.Equal(t, "6*7", c.Expression())

	got, err := c.Compute()
	require.NoError(t, err)
	assert.Equal(t, "42", got)
	assert.Equal(t, "", c.Expression(), "keys cleared after a result")

	c.Push("9")
	c.Push("/")
	_, err = c.Compute()
	require.Error(t, err)
	assert.Equal(t, "9/", c.Expression(), "keys kept after an error")

	c.Push("3")
	got, err = c.Compute()
	require.NoError(t, err)
	assert.Equal(t, "3", got)
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "2", FormatFloat(2.0004))
	assert.Equal(t, "2.001", FormatFloat(2.0006))
	assert.Equal(t, "1.23457e+06", FormatFloat(1234567))
	assert.Equal(t, "-0.5", FormatFloat(-0.5))
}

func TestResultKeys(t *testing.T) {
	assert.Equal(t, []string{"4", "2"}, ResultKeys("42"))
	assert.Len(t, ResultKeys("123456789012345678"), MaxResultKeys)
	assert.Equal(t, "1", ResultKeys("123456789012345678")[0])
	assert.Nil(t, ResultKeys(""))
}
