package domain

// Slot метка временного слота внутри смены, единица эксклюзивности бронирования
type Slot string

// SlotDefinition описывает слот смены: метку и границы по времени (HH:MM)
type SlotDefinition struct {
	Label Slot
	Start string
	End   string
}

// slotCatalog единственный источник правды о допустимых слотах каждой смены.
// Между некоторыми слотами есть перерывы, поэтому границы заданы явно.
var slotCatalog = map[Shift][]SlotDefinition{
	ShiftMorning: {
		{Label: "Slot1", Start: "07:00", End: "08:00"},
		{Label: "Slot2", Start: "08:10", End: "09:00"},
		{Label: "Slot3", Start: "09:10", End: "10:00"},
		{Label: "Slot4", Start: "10:20", End: "11:10"},
		{Label: "Slot5", Start: "11:10", End: "12:00"},
	},
	ShiftAfternoon: {
		{Label: "Slot1", Start: "13:00", End: "14:00"},
		{Label: "Slot2", Start: "14:10", End: "15:00"},
		{Label: "Slot3", Start: "15:10", End: "16:00"},
		{Label: "Slot4", Start: "16:20", End: "17:10"},
		{Label: "Slot5", Start: "17:10", End: "18:00"},
	},
	ShiftNight: {
		{Label: "Slot1", Start: "19:00", End: "20:00"},
		{Label: "Slot2", Start: "20:00", End: "21:00"},
		{Label: "Slot3", Start: "21:00", End: "22:00"},
	},
}

// SlotStrings конвертирует слоты в строки (для JSON и хранения)
func SlotStrings(slots []Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = string(s)
	}
	return out
}

// ToSlots конвертирует строки в слоты без проверки допустимости
func ToSlots(labels []string) []Slot {
	out := make([]Slot, len(labels))
	for i, l := range labels {
		out[i] = Slot(l)
	}
	return out
}
