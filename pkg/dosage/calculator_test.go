package dosage

import (
	"math"
	"testing"

	"github.com/jwoglom/glycemiabot/pkg/command"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name    string
		reading command.Reading
		want    Decision
	}{
		{"just below low threshold", command.Reading{Value: 79}, Decision{Category: CategoryMealGuidance}},
		{"low threshold", command.Reading{Value: 80}, Decision{Category: CategoryNoDoseNeeded}},
		{"ideal", command.Reading{Value: 140}, Decision{Category: CategoryNoDoseNeeded}},
		{"dose threshold", command.Reading{Value: 150}, Decision{Category: CategoryNoDoseNeeded}},
		{"just above dose threshold", command.Reading{Value: 151}, Decision{Category: CategoryStandardDose, Units: 1}},
		{"exact step", command.Reading{Value: 170}, Decision{Category: CategoryStandardDose, Units: 1}},
		{"one over step", command.Reading{Value: 171}, Decision{Category: CategoryStandardDose, Units: 2}},
		{"200", command.Reading{Value: 200}, Decision{Category: CategoryStandardDose, Units: 2}},
		{"very high", command.Reading{Value: 450}, Decision{Category: CategoryStandardDose, Units: 11}},
		{"zero", command.Reading{Value: 0}, Decision{Category: CategoryMealGuidance}},
		{"negative", command.Reading{Value: -15}, Decision{Category: CategoryMealGuidance}},
		{"fasting 60", command.Reading{Value: 60, Fasting: true}, Decision{Category: CategoryFastingDose, Units: 2}},
		{"fasting low value", command.Reading{Value: 50, Fasting: true}, Decision{Category: CategoryFastingDose, Units: 2}},
		{"fasting in range", command.Reading{Value: 120, Fasting: true}, Decision{Category: CategoryFastingDose, Units: 4}},
		{"fasting high", command.Reading{Value: 200, Fasting: true}, Decision{Category: CategoryFastingDose, Units: 7}},
		{"fasting zero", command.Reading{Value: 0, Fasting: true}, Decision{Category: CategoryFastingDose, Units: 0}},
		{"fasting negative", command.Reading{Value: -50, Fasting: true}, Decision{Category: CategoryFastingDose, Units: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.reading)
			if got != tt.want {
				t.Errorf("Compute(%+v) = %+v, want %+v", tt.reading, got, tt.want)
			}
		})
	}
}

// TestCompute_CategoryPartition sweeps a range of values and checks each one
// lands in exactly the band its value implies
func TestCompute_CategoryPartition(t *testing.T) {
	for v := -300; v <= 1000; v++ {
		got := Compute(command.Reading{Value: v})

		var want Category
		switch {
		case v < LowThreshold:
			want = CategoryMealGuidance
		case v <= DoseThreshold:
			want = CategoryNoDoseNeeded
		default:
			want = CategoryStandardDose
		}

		if got.Category != want {
			t.Fatalf("value %d: got category %s, want %s", v, got.Category, want)
		}

		if want == CategoryStandardDose {
			expected := int(math.Ceil(float64(v-IdealGlycemia) / UnitsPerStep))
			if got.Units != expected {
				t.Fatalf("value %d: got %d units, want %d", v, got.Units, expected)
			}
		} else if got.Units != 0 {
			t.Fatalf("value %d: expected 0 units for %s, got %d", v, got.Category, got.Units)
		}
	}
}

func TestCompute_FastingAlwaysDoses(t *testing.T) {
	for v := -300; v <= 1000; v++ {
		got := Compute(command.Reading{Value: v, Fasting: true})
		if got.Category != CategoryFastingDose {
			t.Fatalf("value %d: got category %s, want FastingDose", v, got.Category)
		}
		expected := int(math.Ceil(float64(v) / UnitsPerStep))
		if got.Units != expected {
			t.Fatalf("value %d: got %d units, want %d", v, got.Units, expected)
		}
	}
}

func TestCompute_ExtremeValues(t *testing.T) {
	// Must not panic and must stay in the dose band
	got := Compute(command.Reading{Value: math.MaxInt32})
	if got.Category != CategoryStandardDose {
		t.Errorf("Expected StandardDose for MaxInt32, got %s", got.Category)
	}
	if got.Units <= 0 {
		t.Errorf("Expected positive units for MaxInt32, got %d", got.Units)
	}

	got = Compute(command.Reading{Value: math.MinInt32})
	if got.Category != CategoryMealGuidance {
		t.Errorf("Expected MealGuidance for MinInt32, got %s", got.Category)
	}
}

func TestDirectDecisions(t *testing.T) {
	if Greeting().Category != CategoryGreeting {
		t.Errorf("Greeting() returned %s", Greeting().Category)
	}
	if Unrecognized().Category != CategoryUnrecognized {
		t.Errorf("Unrecognized() returned %s", Unrecognized().Category)
	}
}

func TestCategory_IsDose(t *testing.T) {
	doses := map[Category]bool{
		CategoryUnrecognized: false,
		CategoryGreeting:     false,
		CategoryFastingDose:  true,
		CategoryMealGuidance: false,
		CategoryStandardDose: true,
		CategoryNoDoseNeeded: false,
	}
	for category, want := range doses {
		if category.IsDose() != want {
			t.Errorf("%s.IsDose() = %v, want %v", category, category.IsDose(), want)
		}
	}
}
