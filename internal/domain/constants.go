package domain

// Location bounds
const (
	MinFloor = 1
	MaxFloor = 5
	MinRoom  = 1
	MaxRoom  = 4
)

// Business validation constants
const (
	MinParticipants            = 1
	MaxParticipants            = 30
	MaxReasonLength            = 500
	MaxResponsiblePersonLength = 200
)

// DateFormat формат даты бронирования (YYYY-MM-DD)
const DateFormat = "2006-01-02"
