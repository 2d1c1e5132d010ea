package domain

// Shift represents a coarse daily period that owns its own set of slots
type Shift string

const (
	ShiftMorning   Shift = "Morning"
	ShiftAfternoon Shift = "Afternoon"
	ShiftNight     Shift = "Night"
)

// shiftAliases названия смен, которые присылает старый клиент
var shiftAliases = map[string]Shift{
	"Manhã": ShiftMorning,
	"Tarde": ShiftAfternoon,
	"Noite": ShiftNight,
}

// ParseShift приводит строку к смене, принимая как канонические названия, так и алиасы
func ParseShift(s string) (Shift, bool) {
	shift := Shift(s)
	if shift.Valid() {
		return shift, true
	}
	if alias, ok := shiftAliases[s]; ok {
		return alias, true
	}
	return "", false
}

// Valid returns true if the shift is one of the canonical literals
func (s Shift) Valid() bool {
	_, ok := slotCatalog[s]
	return ok
}

// Shifts возвращает смены в порядке следования в течение дня
func Shifts() []Shift {
	return []Shift{ShiftMorning, ShiftAfternoon, ShiftNight}
}

// Slots возвращает определения слотов смены в порядке следования
func (s Shift) Slots() []SlotDefinition {
	defs := slotCatalog[s]
	out := make([]SlotDefinition, len(defs))
	copy(out, defs)
	return out
}

// SlotLabels возвращает метки слотов смены
func (s Shift) SlotLabels() []Slot {
	defs := slotCatalog[s]
	labels := make([]Slot, len(defs))
	for i, def := range defs {
		labels[i] = def.Label
	}
	return labels
}

// HasSlot returns true if the slot label belongs to the shift
func (s Shift) HasSlot(slot Slot) bool {
	for _, def := range slotCatalog[s] {
		if def.Label == slot {
			return true
		}
	}
	return false
}
