package domain

// Floor номер этажа (1..5)
type Floor int

// Room номер комнаты на этаже (1..4)
type Room int

// Valid returns true if the floor is inside the building
func (f Floor) Valid() bool {
	return f >= MinFloor && f <= MaxFloor
}

// Valid returns true if the room exists on every floor
func (r Room) Valid() bool {
	return r >= MinRoom && r <= MaxRoom
}

// Floors возвращает все этажи по возрастанию
func Floors() []Floor {
	floors := make([]Floor, 0, MaxFloor-MinFloor+1)
	for f := MinFloor; f <= MaxFloor; f++ {
		floors = append(floors, Floor(f))
	}
	return floors
}

// Rooms возвращает все комнаты этажа по возрастанию
func Rooms() []Room {
	rooms := make([]Room, 0, MaxRoom-MinRoom+1)
	for r := MinRoom; r <= MaxRoom; r++ {
		rooms = append(rooms, Room(r))
	}
	return rooms
}
