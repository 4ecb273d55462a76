package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateCircle(t *testing.T) {
	got, err := Calculate("geometry: circle radius=5")
	require.NoError(t, err)

	want := "Geometry: Circle with radius 5 units\n\n" +
		"Area = π × r² = π × 5² = 78.54 square units\n" +
		"Circumference = 2π × r = 2π × 5 = 31.42 units"
	assert.Equal(t, want, got)
}

func TestCalculateRouting(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"diameter", "Geometry: circle diameter=10", "radius 5 units"},
		{"rectangle", "geometry: rectangle length=10 width=5", "Area = length × width = 10 × 5 = 50 square units"},
		{"rectangle perimeter", "geometry: rectangle length=10 width=5", "= 30 units"},
		{"triangle", "geometry: triangle base=6 height=4", "= 12 square units"},
		{"triangle missing", "geometry: triangle", "specify the required parameters"},
		{"geometry help", "geometry: hexagon", "Geometry Calculator"},
		{"sin", "trig: sin 30", "sin(30°) = 0.5000"},
		{"cos", "trig: cos 60", "cos(60°) = 0.5000"},
		{"pythagoras", "trig: pythagorean a=3 b=4", "c = √25 = 5.0000"},
		{"pythagoras leg", "trig: pythagorean a=3 c=5", "b = √16 = 4.0000"},
		{"pythagoras invalid", "trig: pythagorean b=6 c=5", "hypotenuse (c) must be greater"},
		{"velocity", "physics: velocity distance=100 time=20", "Velocity = 5.00 units/time"},
		{"force", "physics: force mass=10 acceleration=2", "Force = 20 N"},
		{"force acc", "physics: force mass=3 acc=3", "Force = 9 N"},
		{"energy", "physics: energy mass=0.001", "Energy = 8.9876e+13 Joules"},
		{"molecular weight", "chemistry: molecular weight H2O", "Molecular Weight: 18.02 g/mol"},
		{"naoh", "chemistry: molar mass NaOH", "Molecular Weight: 40 g/mol"},
		{"ph", "chemistry: pH concentration=1e-7", "[H⁺] = 1.00e-7 M"},
		{"ph value", "chemistry: pH concentration=0.001", "pH = 3.00"},
		{"bmi", "biology: BMI height=1.75 weight=70", "BMI = 70 / 3.0625\nBMI = 22.9\n\nCategory: Normal weight"},
		{"bmi obese", "biology: bmi height=1.5 weight=90", "Category: Obese"},
		{"calories", "biology: calories weight=70 height=175 age=30 gender=male", "Basal Metabolic Rate (BMR): 1696 calories/day"},
		{"calories missing", "biology: calories weight=70", "please specify weight (kg), height (cm), age, and gender"},
		{"solve", "solve: 2x + 3y = 6", "Simplified: 2x+3y-6=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.input)
			require.NoError(t, err)
			assert.Contains(t, got, tt.contains)
		})
	}
}

func TestCalculateUnknownPrefix(t *testing.T) {
	_, err := Calculate("what is 2+2")
	assert.ErrorIs(t, err, ErrUnknownCalculator)
}

func TestRoute(t *testing.T) {
	kind, body, ok := Route("  PHYSICS:  force mass=1 acc=1 ")
	assert.True(t, ok)
	assert.Equal(t, Physics, kind)
	assert.Equal(t, "force mass=1 acc=1", body)

	_, _, ok = Route("geometry circle")
	assert.False(t, ok)
}

func TestSolveLinear(t *testing.T) {
	sol, err := SolveLinear("2x + 3y = 6")
	require.NoError(t, err)

	assert.Equal(t, "2x+3y=6", sol.Original)
	assert.Equal(t, "2x+3y-6=0", sol.Simplified)
	assert.Equal(t, Coefficients{X: 2, Y: 3, Constant: 6}, sol.Coefficients)
	assert.Equal(t, []string{"(0, 2)", "(3, 0)", "(1, 1.3333333333333333)"}, sol.Points)
}

func TestSolveLinearBothSides(t *testing.T) {
	sol, err := SolveLinear("x - 4 = 2y + x")
	require.NoError(t, err)

	assert.Equal(t, Coefficients{X: 0, Y: -2, Constant: 4}, sol.Coefficients)
	assert.Equal(t, "-2y-4=0", sol.Simplified)
	assert.Equal(t, []string{"y = -2"}, sol.Points)
}

func TestSolveLinearOnlyX(t *testing.T) {
	sol, err := SolveLinear("-x = 3")
	require.NoError(t, err)
	assert.Equal(t, "-x-3=0", sol.Simplified)
	assert.Equal(t, []string{"x = -3"}, sol.Points)
}

func TestSolveLinearInvalid(t *testing.T) {
	for _, eq := range []string{"2x+3y", "x=y=1", "=5", "2z=4", "abc=1"} {
		_, err := SolveLinear(eq)
		assert.ErrorIs(t, err, ErrInvalidEquation, eq)
	}
}

func TestExponential(t *testing.T) {
	assert.Equal(t, "8.9876e+13", exponential(8.987551787368176e13, 4))
	assert.Equal(t, "1.00e-7", exponential(1e-7, 2))
	assert.Equal(t, "5.00e+0", exponential(5, 2))
}
