package calculator

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalidEquation = errors.New("calculator: invalid equation format, use ax+by=cx+dy")

type Coefficients struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Constant float64 `json:"constant"`
}

// Solution describes a linear equation in x and y normalized to
// X·x + Y·y = Constant.
type Solution struct {
	Original     string       `json:"original"`
	Simplified   string       `json:"simplified"`
	Coefficients Coefficients `json:"coefficients"`
	Points       []string     `json:"points"`
}

var (
	whitespace = regexp.MustCompile(`\s+`)
	termSplit  = regexp.MustCompile(`[+-][^+-]*`)
)

// SolveLinear normalizes an equation such as "2x+3y=6" or "x-4=2y" and
// lists a few points on it.
func SolveLinear(equation string) (*Solution, error) {
	eq := strings.ToLower(whitespace.ReplaceAllString(equation, ""))
	sides := strings.Split(eq, "=")
	if len(sides) != 2 || sides[0] == "" || sides[1] == "" {
		return nil, ErrInvalidEquation
	}

	left, err := parseSide(sides[0])
	if err != nil {
		return nil, err
	}
	right, err := parseSide(sides[1])
	if err != nil {
		return nil, err
	}

	c := Coefficients{
		X:        left.X - right.X,
		Y:        left.Y - right.Y,
		Constant: right.Constant - left.Constant,
	}

	return &Solution{
		Original:     eq,
		Simplified:   simplify(c),
		Coefficients: c,
		Points:       points(c),
	}, nil
}

func parseSide(side string) (Coefficients, error) {
	if side[0] != '+' && side[0] != '-' {
		side = "+" + side
	}

	var c Coefficients
	for _, term := range termSplit.FindAllString(side, -1) {
		switch {
		case strings.Contains(term, "x"):
			v, err := coefficient(strings.Replace(term, "x", "", 1))
			if err != nil {
				return c, err
			}
			c.X += v
		case strings.Contains(term, "y"):
			v, err := coefficient(strings.Replace(term, "y", "", 1))
			if err != nil {
				return c, err
			}
			c.Y += v
		default:
			v, err := strconv.ParseFloat(term, 64)
			if err != nil {
				return c, fmt.Errorf("%w: bad term %q", ErrInvalidEquation, term)
			}
			c.Constant += v
		}
	}
	return c, nil
}

func coefficient(s string) (float64, error) {
	switch s {
	case "+":
		return 1, nil
	case "-":
		return -1, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad coefficient %q", ErrInvalidEquation, s)
	}
	return v, nil
}

// simplify renders X·x + Y·y - Constant = 0.
func simplify(c Coefficients) string {
	var b strings.Builder
	if c.X != 0 {
		switch c.X {
		case 1:
			b.WriteString("x")
		case -1:
			b.WriteString("-x")
		default:
			b.WriteString(num(c.X) + "x")
		}
	}
	if c.Y != 0 {
		b.WriteString(sign(c.Y, b.Len() > 0))
		if abs := math.Abs(c.Y); abs != 1 {
			b.WriteString(num(abs))
		}
		b.WriteString("y")
	}
	if k := -c.Constant; k != 0 {
		b.WriteString(sign(k, b.Len() > 0))
		b.WriteString(num(math.Abs(k)))
	}
	if b.Len() == 0 {
		b.WriteString("0")
	}
	b.WriteString("=0")
	return b.String()
}

func sign(v float64, hasLead bool) string {
	switch {
	case v < 0:
		return "-"
	case hasLead:
		return "+"
	default:
		return ""
	}
}

func points(c Coefficients) []string {
	switch {
	case c.X != 0 && c.Y != 0:
		return []string{
			fmt.Sprintf("(0, %s)", num(c.Constant/c.Y)),
			fmt.Sprintf("(%s, 0)", num(c.Constant/c.X)),
			fmt.Sprintf("(1, %s)", num((c.Constant-c.X)/c.Y)),
		}
	case c.X != 0:
		return []string{fmt.Sprintf("x = %s", num(c.Constant/c.X))}
	case c.Y != 0:
		return []string{fmt.Sprintf("y = %s", num(c.Constant/c.Y))}
	default:
		return []string{}
	}
}

func (s *Solution) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Equation: %s\n\n", s.Original)
	fmt.Fprintf(&b, "Simplified: %s\n", s.Simplified)
	fmt.Fprintf(&b, "Coefficients: x = %s, y = %s, constant = %s\n",
		num(s.Coefficients.X), num(s.Coefficients.Y), num(s.Coefficients.Constant))
	if len(s.Points) > 0 {
		fmt.Fprintf(&b, "\nPoints: %s", strings.Join(s.Points, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}
