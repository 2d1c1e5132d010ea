package get_catalog

import "github.com/m04kA/SMC-RoomBookingService/internal/domain"

// CatalogResponse допустимые этажи, комнаты, смены и слоты
type CatalogResponse struct {
	Floors []int           `json:"floors"`
	Rooms  []int           `json:"rooms"`
	Shifts []ShiftResponse `json:"shifts"`
}

type ShiftResponse struct {
	Name  string         `json:"name"`
	Slots []SlotResponse `json:"slots"`
}

type SlotResponse struct {
	Label string `json:"label"`
	Start string `json:"start"`
	End   string `json:"end"`
}

func buildCatalog() CatalogResponse {
	floors := domain.Floors()
	rooms := domain.Rooms()

	resp := CatalogResponse{
		Floors: make([]int, len(floors)),
		Rooms:  make([]int, len(rooms)),
		Shifts: make([]ShiftResponse, 0, len(domain.Shifts())),
	}
	for i, f := range floors {
		resp.Floors[i] = int(f)
	}
	for i, r := range rooms {
		resp.Rooms[i] = int(r)
	}

	for _, shift := range domain.Shifts() {
		defs := shift.Slots()
		slots := make([]SlotResponse, len(defs))
		for i, def := range defs {
			slots[i] = SlotResponse{Label: string(def.Label), Start: def.Start, End: def.End}
		}
		resp.Shifts = append(resp.Shifts, ShiftResponse{Name: string(shift), Slots: slots})
	}

	return resp
}
