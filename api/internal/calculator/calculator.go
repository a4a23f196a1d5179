// Package calculator evaluates single binary arithmetic expressions of the
// form "<number> <operator> <number>".
package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidFormat       = errors.New("invalid expression format, use: 'number operator number'")
	ErrUnsupportedOperator = errors.New("unsupported operator")
	ErrDivisionByZero      = errors.New("division by zero")
	ErrInvalidNumber       = errors.New("invalid number format")
	ErrNotReal             = errors.New("result is not a real number")
	ErrOverflow            = errors.New("numerical result out of range")
)

type op func(a, b float64) float64

var operations = map[string]op{
	"+":  func(a, b float64) float64 { return a + b },
	"-":  func(a, b float64) float64 { return a - b },
	"*":  func(a, b float64) float64 { return a * b },
	"/":  func(a, b float64) float64 { return a / b },
	"**": math.Pow,
}

// Operators lists supported operator symbols.
func Operators() []string {
	return []string{"+", "-", "*", "/", "**"}
}

// Calculate evaluates expr. Operands and operator must be separated by whitespace.
func Calculate(expr string) (float64, error) {
	parts := strings.Fields(expr)
	if len(parts) != 3 {
		return 0, ErrInvalidFormat
	}

	a, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, parts[0])
	}
	sym := parts[1]
	b, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, parts[2])
	}

	fn, ok := operations[sym]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedOperator, sym)
	}
	if sym == "/" && b == 0 {
		return 0, ErrDivisionByZero
	}
	// 0 ** -1
	if sym == "**" && a == 0 && b < 0 {
		return 0, ErrDivisionByZero
	}

	res := fn(a, b)
	finite := !math.IsInf(a, 0) && !math.IsInf(b, 0) && !math.IsNaN(a) && !math.IsNaN(b)
	// (-8) ** 0.5 и подобное
	if math.IsNaN(res) && finite {
		return 0, ErrNotReal
	}
	// + - * переполняются в inf без ошибки, степень нет
	if sym == "**" && math.IsInf(res, 0) && finite {
		return 0, ErrOverflow
	}
	return res, nil
}
