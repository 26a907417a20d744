package vna

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseComplex decodes a "<real>,<imag>" line into a complex value.
//
// The line must hold exactly two comma separated base-10 decimal literals. Surrounding spaces
// around each token are tolerated. Anything else, including inf, nan and hexadecimal floats,
// fails with ErrDecode.
func ParseComplex(line string) (complex128, error) {
	re, im, ok := strings.Cut(line, ",")
	if !ok || strings.Contains(im, ",") {
		return 0, fmt.Errorf("%w: %q: want \"<real>,<imag>\"", ErrDecode, line)
	}

	r, err := parseDecimal(re)
	if err != nil {
		return 0, fmt.Errorf("%w: real part of %q: %w", ErrDecode, line, err)
	}
	i, err := parseDecimal(im)
	if err != nil {
		return 0, fmt.Errorf("%w: imaginary part of %q: %w", ErrDecode, line, err)
	}

	return complex(r, i), nil
}

// ParseFloat decodes a line holding a single base-10 decimal literal, such as a frequency in Hz.
func ParseFloat(line string) (float64, error) {
	v, err := parseDecimal(line)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrDecode, line, err)
	}

	return v, nil
}

// FormatHz renders a frequency in plain decimal notation, as the instrument expects.
func FormatHz(hz float64) string {
	return strconv.FormatFloat(hz, 'f', -1, 64)
}

func parseDecimal(tok string) (float64, error) {
	tok = strings.TrimSpace(tok)
	if !isDecimalLiteral(tok) {
		return 0, fmt.Errorf("not a decimal number: %q", tok)
	}

	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, err
	}

	return v, nil
}

// isDecimalLiteral accepts [+-]digits[.digits][(e|E)[+-]digits] with at least one mantissa digit.
func isDecimalLiteral(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	mantissa := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		mantissa++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			mantissa++
		}
	}
	if mantissa == 0 {
		return false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}

	return i == len(s)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
