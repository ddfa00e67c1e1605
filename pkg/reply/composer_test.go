package reply

import (
	"strings"
	"testing"

	"github.com/jwoglom/glycemiabot/pkg/command"
	"github.com/jwoglom/glycemiabot/pkg/dosage"
)

func TestCompose(t *testing.T) {
	tests := []struct {
		name     string
		decision dosage.Decision
		reading  command.Reading
		contains []string
		excludes []string
	}{
		{
			name:     "greeting",
			decision: dosage.Greeting(),
			contains: []string{"Olá", "Como posso ajudar?"},
		},
		{
			name:     "standard dose",
			decision: dosage.Decision{Category: dosage.CategoryStandardDose, Units: 2},
			reading:  command.Reading{Value: 200},
			contains: []string{"200 mg/dl", "2 unidade(s) de insulina", "140 mg/dl"},
		},
		{
			name:     "fasting dose",
			decision: dosage.Decision{Category: dosage.CategoryFastingDose, Units: 2},
			reading:  command.Reading{Value: 60, Fasting: true},
			contains: []string{"60 mg/dl", "2 unidade(s) de insulina"},
		},
		{
			name:     "meal guidance",
			decision: dosage.Decision{Category: dosage.CategoryMealGuidance},
			reading:  command.Reading{Value: 65},
			contains: []string{"65 mg/dl", "refeição saudável", "fibras", "proteína magra", "água", "alto índice glicêmico"},
			excludes: []string{"unidade(s)"},
		},
		{
			name:     "no dose needed",
			decision: dosage.Decision{Category: dosage.CategoryNoDoseNeeded},
			reading:  command.Reading{Value: 150},
			contains: []string{"150 mg/dl", "faixa ideal", "Não é necessário tomar insulina"},
			excludes: []string{"unidade(s)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, ok := Compose(tt.decision, tt.reading)
			if !ok {
				t.Fatalf("Compose returned no text for %s", tt.decision.Category)
			}
			for _, s := range tt.contains {
				if !strings.Contains(text, s) {
					t.Errorf("Expected reply to contain %q, got:\n%s", s, text)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(text, s) {
					t.Errorf("Expected reply not to contain %q, got:\n%s", s, text)
				}
			}
		})
	}
}

func TestCompose_DoseTemplateOnlyForDoseCategories(t *testing.T) {
	reading := command.Reading{Value: 120}
	categories := []dosage.Category{
		dosage.CategoryGreeting,
		dosage.CategoryFastingDose,
		dosage.CategoryMealGuidance,
		dosage.CategoryStandardDose,
		dosage.CategoryNoDoseNeeded,
	}

	for _, category := range categories {
		t.Run(category.String(), func(t *testing.T) {
			text, _ := Compose(dosage.Decision{Category: category, Units: 4}, reading)
			hasDose := strings.Contains(text, "4 unidade(s) de insulina")
			if hasDose != category.IsDose() {
				t.Errorf("%s: dose text present = %v, want %v", category, hasDose, category.IsDose())
			}
		})
	}
}

func TestCompose_Unrecognized(t *testing.T) {
	text, ok := Compose(dosage.Unrecognized(), command.Reading{})
	if ok {
		t.Errorf("Expected no reply for unrecognized decision, got %q", text)
	}
	if text != "" {
		t.Errorf("Expected empty text, got %q", text)
	}
}

func TestCompose_Idempotent(t *testing.T) {
	decision := dosage.Decision{Category: dosage.CategoryStandardDose, Units: 3}
	reading := command.Reading{Value: 220}

	first, _ := Compose(decision, reading)
	second, _ := Compose(decision, reading)
	if first != second {
		t.Errorf("Compose is not idempotent:\n%q\n%q", first, second)
	}
}

func TestReminder(t *testing.T) {
	text := Reminder()

	for _, s := range []string{"LEMBRE-SE SEMPRE", "20 UI | ☕️ CAFÉ DA MANHÃ", "20 UI | 🥗 ALMOÇO", "20 UI | 🥪 AO DORMIR", "[FAZER UMA REFEIÇÃO LEVE]"} {
		if !strings.Contains(text, s) {
			t.Errorf("Expected reminder to contain %q, got:\n%s", s, text)
		}
	}

	if Reminder() != text {
		t.Error("Reminder text should be identical on every call")
	}
}
