package list_reservations

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/validator"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations?date=&floor=&room=&shift=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter, err := validator.ParseFilter(validator.FilterInput{
		Date:  q.Get("date"),
		Floor: q.Get("floor"),
		Room:  q.Get("room"),
		Shift: q.Get("shift"),
	})
	if err != nil {
		h.logger.Warn("GET /reservations - Invalid filter: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	list, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /reservations - Failed to list reservations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}
