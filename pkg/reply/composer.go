package reply

import (
	"fmt"

	"github.com/jwoglom/glycemiabot/pkg/command"
	"github.com/jwoglom/glycemiabot/pkg/dosage"
)

// Reminder doses, in insulin units
const (
	BreakfastUnits = 20
	LunchUnits     = 20
	BedtimeUnits   = 20
)

const greetingText = "Olá, tudo bem com você? Como posso ajudar?"

const doseTemplate = `Sua glicemia está em %d mg/dl.

🟡 %d unidade(s) de insulina são necessárias para reduzir até %d mg/dl.`

const mealGuidanceTemplate = `Sua glicemia está em %d mg/dl.

É muito importante que você faça uma refeição saudável para evitar que a glicemia caia ainda mais.

Recomendações:
    - Coma alimentos ricos em fibras, como vegetais e frutas.
    - Considere incluir uma fonte de proteína magra, como ovos ou frango.
    - Beba bastante água e evite alimentos com alto índice glicêmico.

Mantenha a glicemia estável e cuide da sua saúde!`

const noDoseTemplate = "Sua glicemia está em %d mg/dl, o que está dentro da faixa ideal ou ligeiramente elevada. Não é necessário tomar insulina."

const reminderTemplate = `⚠️ LEMBRE-SE SEMPRE:

💉🟢 %d UI | ☕️ CAFÉ DA MANHÃ
💉🟢 %d UI | 🥗 ALMOÇO
💉🟢 %d UI | 🥪 AO DORMIR

[FAZER UMA REFEIÇÃO LEVE]`

// Compose builds the reply text for a decision. The reading is only used by
// the numeric categories. It returns false when nothing should be sent.
func Compose(decision dosage.Decision, reading command.Reading) (string, bool) {
	if decision.Category.IsDose() {
		return fmt.Sprintf(doseTemplate, reading.Value, decision.Units, dosage.IdealGlycemia), true
	}

	switch decision.Category {
	case dosage.CategoryGreeting:
		return greetingText, true

	case dosage.CategoryMealGuidance:
		return fmt.Sprintf(mealGuidanceTemplate, reading.Value), true

	case dosage.CategoryNoDoseNeeded:
		return fmt.Sprintf(noDoseTemplate, reading.Value), true

	default:
		return "", false
	}
}

// Reminder returns the standing reminder sent after every dosage reply
func Reminder() string {
	return fmt.Sprintf(reminderTemplate, BreakfastUnits, LunchUnits, BedtimeUnits)
}
