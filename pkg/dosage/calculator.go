package dosage

import "github.com/jwoglom/glycemiabot/pkg/command"

// Dosing constants, in mg/dL unless noted
const (
	IdealGlycemia = 140
	UnitsPerStep  = 30 // mg/dL lowered by one insulin unit
	LowThreshold  = 80
	DoseThreshold = 150
)

// Category classifies the outcome for a message
type Category int

const (
	CategoryUnrecognized Category = iota
	CategoryGreeting
	CategoryFastingDose
	CategoryMealGuidance
	CategoryStandardDose
	CategoryNoDoseNeeded
)

func (c Category) String() string {
	switch c {
	case CategoryGreeting:
		return "Greeting"
	case CategoryFastingDose:
		return "FastingDose"
	case CategoryMealGuidance:
		return "MealGuidance"
	case CategoryStandardDose:
		return "StandardDose"
	case CategoryNoDoseNeeded:
		return "NoDoseNeeded"
	default:
		return "Unrecognized"
	}
}

// IsDose returns true if the category carries a unit recommendation
func (c Category) IsDose() bool {
	return c == CategoryFastingDose || c == CategoryStandardDose
}

// Decision is the result of evaluating a reading
type Decision struct {
	Category Category
	// Units is only meaningful when Category.IsDose()
	Units int
}

// Greeting returns the decision for a greeting message
func Greeting() Decision {
	return Decision{Category: CategoryGreeting}
}

// Unrecognized returns the decision for a message that could not be parsed
func Unrecognized() Decision {
	return Decision{Category: CategoryUnrecognized}
}

// Compute maps a reading to a dosage decision. Fasting readings always get a
// dose and bypass the low and dose thresholds.
func Compute(reading command.Reading) Decision {
	switch {
	case reading.Fasting:
		return Decision{
			Category: CategoryFastingDose,
			Units:    ceilDiv(reading.Value, UnitsPerStep),
		}
	case reading.Value < LowThreshold:
		return Decision{Category: CategoryMealGuidance}
	case reading.Value > DoseThreshold:
		return Decision{
			Category: CategoryStandardDose,
			Units:    ceilDiv(reading.Value-IdealGlycemia, UnitsPerStep),
		}
	default:
		return Decision{Category: CategoryNoDoseNeeded, Units: 0}
	}
}

// ceilDiv rounds a/b towards positive infinity for b > 0
func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a > 0 {
		q++
	}
	return q
}
