package status

// Preset labels offered as quick-select buttons. The label text is stored verbatim.
const (
	PresetAtWork       = "✅ На работе"
	PresetAtHome       = "🏠 Дома"
	PresetVacation     = "🌴 В отпуске"
	PresetSick         = "🤒 Болею"
	PresetBusinessTrip = "✈️ В командировке"
)

// WriteCustom switches a status choice to free-text input.
const WriteCustom = "✏️ Написать свой"

// Cancel aborts free-text input without writing anything.
const Cancel = "Отмена"

// Presets returns the preset labels in menu order.
func Presets() []string {
	return []string{PresetAtWork, PresetAtHome, PresetVacation, PresetSick, PresetBusinessTrip}
}

// IsPreset reports whether text is exactly one of the preset labels.
func IsPreset(text string) bool {
	for _, p := range Presets() {
		if p == text {
			return true
		}
	}
	return false
}
