// Package calculator holds the canned science calculators and the linear
// equation solver. Problems are routed by a "<kind>:" prefix.
package calculator

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var ErrUnknownCalculator = errors.New("calculator: no calculator prefix")

type Kind string

const (
	Geometry  Kind = "geometry"
	Trig      Kind = "trig"
	Physics   Kind = "physics"
	Chemistry Kind = "chemistry"
	Biology   Kind = "biology"
	Solve     Kind = "solve"
)

var kinds = []Kind{Geometry, Trig, Physics, Chemistry, Biology, Solve}

// Route splits "geometry: circle radius=5" into its kind and body.
func Route(text string) (Kind, string, bool) {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)
	for _, k := range kinds {
		prefix := string(k) + ":"
		if strings.HasPrefix(lower, prefix) {
			return k, strings.TrimSpace(trimmed[len(prefix):]), true
		}
	}
	return "", "", false
}

// Calculate routes text to the matching calculator and returns its report.
func Calculate(text string) (string, error) {
	kind, body, ok := Route(text)
	if !ok {
		return "", ErrUnknownCalculator
	}
	return Run(kind, body)
}

// Run evaluates body with the calculator for kind.
func Run(kind Kind, body string) (string, error) {
	switch kind {
	case Geometry:
		return GeometryReport(body), nil
	case Trig:
		return TrigReport(body), nil
	case Physics:
		return PhysicsReport(body), nil
	case Chemistry:
		return ChemistryReport(body), nil
	case Biology:
		return BiologyReport(body), nil
	case Solve:
		sol, err := SolveLinear(body)
		if err != nil {
			return "", err
		}
		return sol.String(), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownCalculator, kind)
	}
}

func param(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + name + `\s*=?\s*(\d+(?:\.\d+)?)`)
}

// value returns the first number bound to re in s. Zero counts as missing.
func value(re *regexp.Regexp, s string) (float64, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v == 0 {
		return 0, false
	}
	return v, true
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fixed(v float64, digits int) string {
	return strconv.FormatFloat(v, 'f', digits, 64)
}

// exponential renders v like 8.9876e+13, with no zero padding in the exponent.
func exponential(v float64, digits int) string {
	s := strconv.FormatFloat(v, 'e', digits, 64)
	mant, exp, ok := strings.Cut(s, "e")
	if !ok {
		return s
	}
	sign := exp[:1]
	exp = strings.TrimLeft(exp[1:], "0")
	if exp == "" {
		exp = "0"
	}
	return mant + "e" + sign + exp
}

func round(v float64) string {
	return num(math.Round(v))
}
