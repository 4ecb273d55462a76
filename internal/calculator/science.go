package calculator

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	radiusParam       = param("radius")
	diameterParam     = param("diameter")
	lengthParam       = param("length")
	widthParam        = param("width")
	baseParam         = param("base")
	heightParam       = param("height")
	legAParam         = param("a")
	legBParam         = param("b")
	hypotenuseParam   = param("c")
	distanceParam     = param("distance")
	timeParam         = param("time")
	massParam         = param("mass")
	accelerationParam = param("acceleration")
	accParam          = param("acc")
	weightParam       = param("weight")

	angleParam         = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	ageParam           = regexp.MustCompile(`(?i)age\s*=?\s*(\d+)`)
	genderParam        = regexp.MustCompile(`(?i)gender\s*=?\s*(male|female)`)
	concentrationParam = regexp.MustCompile(`(?i)concentration\s*=?\s*(\d+(?:\.\d+)?e?-?\d*)`)
	hydrogenParam      = regexp.MustCompile(`(?i)\[h\+\]\s*=?\s*(\d+(?:\.\d+)?e?-?\d*)`)
)

const speedOfLight = 299792458.0

func GeometryReport(problem string) string {
	lower := strings.ToLower(problem)

	switch {
	case strings.Contains(lower, "circle"), strings.Contains(lower, "radius"), strings.Contains(lower, "diameter"):
		radius, ok := value(radiusParam, problem)
		if !ok {
			if d, dok := value(diameterParam, problem); dok {
				radius, ok = d/2, true
			}
		}
		if !ok {
			return "For circle calculations, please specify the radius or diameter.\n\nExample: geometry: circle radius=5"
		}
		area := math.Pi * radius * radius
		circumference := 2 * math.Pi * radius
		r := num(radius)
		return fmt.Sprintf("Geometry: Circle with radius %s units\n\n", r) +
			fmt.Sprintf("Area = π × r² = π × %s² = %s square units\n", r, fixed(area, 2)) +
			fmt.Sprintf("Circumference = 2π × r = 2π × %s = %s units", r, fixed(circumference, 2))

	case strings.Contains(lower, "rectangle"), strings.Contains(lower, "length") && strings.Contains(lower, "width"):
		length, lok := value(lengthParam, problem)
		width, wok := value(widthParam, problem)
		if !lok || !wok {
			return "For rectangle calculations, please specify both length and width.\n\nExample: geometry: rectangle length=10 width=5"
		}
		l, w := num(length), num(width)
		return fmt.Sprintf("Geometry: Rectangle with length %s and width %s units\n\n", l, w) +
			fmt.Sprintf("Area = length × width = %s × %s = %s square units\n", l, w, num(length*width)) +
			fmt.Sprintf("Perimeter = 2 × (length + width) = 2 × (%s + %s) = %s units", l, w, num(2*(length+width)))

	case strings.Contains(lower, "triangle"):
		if !strings.Contains(lower, "base") || !strings.Contains(lower, "height") {
			return "For triangle calculations, please specify the required parameters.\n\nFor area: geometry: triangle base=6 height=4"
		}
		base, bok := value(baseParam, problem)
		height, hok := value(heightParam, problem)
		if !bok || !hok {
			return "For triangle area calculations, please specify both base and height.\n\nExample: geometry: triangle base=6 height=4"
		}
		b, h := num(base), num(height)
		return fmt.Sprintf("Geometry: Triangle with base %s and height %s units\n\n", b, h) +
			fmt.Sprintf("Area = ½ × base × height = ½ × %s × %s = %s square units", b, h, num(0.5*base*height))
	}

	return "Geometry Calculator\n\nPlease specify what you want to calculate. Examples:\n" +
		"- geometry: circle radius=5\n" +
		"- geometry: rectangle length=10 width=5\n" +
		"- geometry: triangle base=6 height=4"
}

func TrigReport(problem string) string {
	lower := strings.ToLower(problem)

	switch {
	case strings.Contains(lower, "sin"), strings.Contains(lower, "cos"), strings.Contains(lower, "tan"):
		m := angleParam.FindStringSubmatch(problem)
		if m == nil {
			return "Please specify an angle in degrees.\n\nExample: trig: sin 30"
		}
		angle, _ := strconv.ParseFloat(m[1], 64)
		rad := angle * math.Pi / 180
		a := num(angle)
		return fmt.Sprintf("Trigonometry: Values for %s°\n\n", a) +
			fmt.Sprintf("sin(%s°) = %s\n", a, fixed(math.Sin(rad), 4)) +
			fmt.Sprintf("cos(%s°) = %s\n", a, fixed(math.Cos(rad), 4)) +
			fmt.Sprintf("tan(%s°) = %s", a, fixed(math.Tan(rad), 4))

	case strings.Contains(lower, "pythag"), strings.Contains(lower, "right triangle"):
		return pythagoras(problem)
	}

	return "Trigonometry Calculator\n\nPlease specify what you want to calculate. Examples:\n" +
		"- trig: sin 30 (calculates sin, cos, tan of 30 degrees)\n" +
		"- trig: pythagorean a=3 b=4 (finds the hypotenuse using the Pythagorean theorem)"
}

const invalidHypotenuse = "Invalid values: In a right triangle, the hypotenuse (c) must be greater than either leg (a or b)."

func pythagoras(problem string) string {
	a, aok := value(legAParam, problem)
	b, bok := value(legBParam, problem)
	c, cok := value(hypotenuseParam, problem)

	switch {
	case aok && bok:
		sum := a*a + b*b
		return fmt.Sprintf("Pythagorean Theorem: a = %s, b = %s\n\n", num(a), num(b)) +
			"c² = a² + b²\n" +
			fmt.Sprintf("c² = %s² + %s²\n", num(a), num(b)) +
			fmt.Sprintf("c² = %s + %s = %s\n", num(a*a), num(b*b), num(sum)) +
			fmt.Sprintf("c = √%s = %s", num(sum), fixed(math.Sqrt(sum), 4))
	case aok && cok:
		if a >= c {
			return invalidHypotenuse
		}
		diff := c*c - a*a
		return fmt.Sprintf("Pythagorean Theorem: a = %s, c = %s\n\n", num(a), num(c)) +
			"b² = c² - a²\n" +
			fmt.Sprintf("b² = %s² - %s²\n", num(c), num(a)) +
			fmt.Sprintf("b² = %s - %s = %s\n", num(c*c), num(a*a), num(diff)) +
			fmt.Sprintf("b = √%s = %s", num(diff), fixed(math.Sqrt(diff), 4))
	case bok && cok:
		if b >= c {
			return invalidHypotenuse
		}
		diff := c*c - b*b
		return fmt.Sprintf("Pythagorean Theorem: b = %s, c = %s\n\n", num(b), num(c)) +
			"a² = c² - b²\n" +
			fmt.Sprintf("a² = %s² - %s²\n", num(c), num(b)) +
			fmt.Sprintf("a² = %s - %s = %s\n", num(c*c), num(b*b), num(diff)) +
			fmt.Sprintf("a = √%s = %s", num(diff), fixed(math.Sqrt(diff), 4))
	}

	return "For Pythagorean theorem calculations, please specify at least two sides of the right triangle.\n\n" +
		"Example: trig: pythagorean a=3 b=4\n" +
		"(where a and b are the legs and c is the hypotenuse)"
}

func PhysicsReport(problem string) string {
	lower := strings.ToLower(problem)

	switch {
	case strings.Contains(lower, "velocity"), strings.Contains(lower, "speed"):
		distance, dok := value(distanceParam, problem)
		t, tok := value(timeParam, problem)
		if !dok || !tok {
			return "For velocity calculations, please specify both distance and time.\n\nExample: physics: velocity distance=100 time=20"
		}
		return "Physics: Velocity Calculation\n\n" +
			"Velocity = Distance / Time\n" +
			fmt.Sprintf("Velocity = %s / %s\n", num(distance), num(t)) +
			fmt.Sprintf("Velocity = %s units/time", fixed(distance/t, 2))

	case strings.Contains(lower, "force"):
		mass, mok := value(massParam, problem)
		acc, aok := value(accelerationParam, problem)
		if !aok {
			acc, aok = value(accParam, problem)
		}
		if !mok || !aok {
			return "For force calculations, please specify both mass and acceleration.\n\nExample: physics: force mass=10 acceleration=9.8"
		}
		return "Physics: Force Calculation (Newton's Second Law)\n\n" +
			"Force = Mass × Acceleration\n" +
			fmt.Sprintf("Force = %s × %s\n", num(mass), num(acc)) +
			fmt.Sprintf("Force = %s N", num(mass*acc))

	case strings.Contains(lower, "energy") && strings.Contains(lower, "mass"):
		mass, ok := value(massParam, problem)
		if !ok {
			return "For energy-mass calculations, please specify the mass.\n\nExample: physics: energy mass=0.001"
		}
		return "Physics: Energy-Mass Equivalence (E = mc²)\n\n" +
			"Energy = Mass × Speed of Light²\n" +
			fmt.Sprintf("Energy = %s × (299,792,458)²\n", num(mass)) +
			fmt.Sprintf("Energy = %s Joules", exponential(mass*speedOfLight*speedOfLight, 4))
	}

	return "Physics Calculator\n\nPlease specify what you want to calculate. Examples:\n" +
		"- physics: velocity distance=100 time=20\n" +
		"- physics: force mass=10 acceleration=9.8\n" +
		"- physics: energy mass=0.001"
}

type molecule struct {
	key     string
	formula string
	weight  string
}

// Checked in order; the first key contained in the problem wins.
var molecules = []molecule{
	{"h2o", "H₂O", "18.02"},
	{"co2", "CO₂", "44.01"},
	{"nacl", "NaCl", "58.44"},
	{"c6h12o6", "C₆H₁₂O₆", "180.16"},
	{"h2so4", "H₂SO₄", "98.08"},
	{"nh3", "NH₃", "17.03"},
	{"ch4", "CH₄", "16.04"},
	{"hcl", "HCl", "36.46"},
	{"naoh", "NaOH", "40"},
	{"c2h5oh", "C₂H₅OH", "46.07"},
}

func ChemistryReport(problem string) string {
	lower := strings.ToLower(problem)

	switch {
	case strings.Contains(lower, "molecular weight"), strings.Contains(lower, "molar mass"):
		for _, m := range molecules {
			if strings.Contains(lower, m.key) {
				return "Chemistry: Molecular Weight Calculation\n\n" +
					fmt.Sprintf("Formula: %s\n", m.formula) +
					fmt.Sprintf("Molecular Weight: %s g/mol", m.weight)
			}
		}
		return "Please specify a valid molecular formula.\n\nExample: chemistry: molecular weight H2O\n\n" +
			"I can calculate molecular weights for common molecules like H2O, CO2, NaCl, C6H12O6, etc."

	case strings.Contains(lower, "ph"):
		m := concentrationParam.FindStringSubmatch(problem)
		if m == nil {
			m = hydrogenParam.FindStringSubmatch(problem)
		}
		if m == nil {
			return "For pH calculations, please specify the hydrogen ion concentration.\n\nExample: chemistry: pH concentration=1e-7"
		}
		conc, err := strconv.ParseFloat(m[1], 64)
		if err != nil || conc <= 0 {
			return "Invalid concentration value. Concentration must be greater than 0."
		}
		c := exponential(conc, 2)
		return "Chemistry: pH Calculation\n\n" +
			fmt.Sprintf("[H⁺] = %s M\n", c) +
			"pH = -log₁₀[H⁺]\n" +
			fmt.Sprintf("pH = -log₁₀(%s)\n", c) +
			fmt.Sprintf("pH = %s", fixed(-math.Log10(conc), 2))
	}

	return "Chemistry Calculator\n\nPlease specify what you want to calculate. Examples:\n" +
		"- chemistry: molecular weight H2O\n" +
		"- chemistry: pH concentration=1e-7"
}

func BiologyReport(problem string) string {
	lower := strings.ToLower(problem)

	switch {
	case strings.Contains(lower, "bmi"):
		height, hok := value(heightParam, problem)
		weight, wok := value(weightParam, problem)
		if !hok || !wok {
			return "For BMI calculations, please specify both height (in meters) and weight (in kg).\n\nExample: biology: BMI height=1.75 weight=70"
		}
		bmi := weight / (height * height)
		return "Biology: BMI Calculation\n\n" +
			"BMI = Weight / Height²\n" +
			fmt.Sprintf("BMI = %s / (%s)²\n", num(weight), num(height)) +
			fmt.Sprintf("BMI = %s / %s\n", num(weight), num(height*height)) +
			fmt.Sprintf("BMI = %s\n\n", fixed(bmi, 1)) +
			fmt.Sprintf("Category: %s", bmiCategory(bmi))

	case strings.Contains(lower, "calorie"), strings.Contains(lower, "tdee"):
		weight, wok := value(weightParam, problem)
		height, hok := value(heightParam, problem)
		ageMatch := ageParam.FindStringSubmatch(problem)
		genderMatch := genderParam.FindStringSubmatch(problem)
		if !wok || !hok || ageMatch == nil || genderMatch == nil {
			return "For calorie needs calculations, please specify weight (kg), height (cm), age, and gender.\n\nExample: biology: calories weight=70 height=175 age=30 gender=male"
		}
		age, _ := strconv.ParseFloat(ageMatch[1], 64)

		// Harris-Benedict
		var bmr float64
		if strings.EqualFold(genderMatch[1], "male") {
			bmr = 88.362 + 13.397*weight + 4.799*height - 5.677*age
		} else {
			bmr = 447.593 + 9.247*weight + 3.098*height - 4.330*age
		}
		return "Biology: Daily Calorie Needs (TDEE)\n\n" +
			fmt.Sprintf("Basal Metabolic Rate (BMR): %s calories/day\n\n", round(bmr)) +
			"Total Daily Energy Expenditure (TDEE):\n" +
			fmt.Sprintf("- Sedentary: %s calories/day\n", round(bmr*1.2)) +
			fmt.Sprintf("- Light Activity: %s calories/day\n", round(bmr*1.375)) +
			fmt.Sprintf("- Moderate Activity: %s calories/day\n", round(bmr*1.55)) +
			fmt.Sprintf("- Active Lifestyle: %s calories/day\n", round(bmr*1.725)) +
			fmt.Sprintf("- Very Active: %s calories/day", round(bmr*1.9))
	}

	return "Biology Calculator\n\nPlease specify what you want to calculate. Examples:\n" +
		"- biology: BMI height=1.75 weight=70\n" +
		"- biology: calories weight=70 height=175 age=30 gender=male"
}

func bmiCategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal weight"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}
