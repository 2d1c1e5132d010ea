package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-RoomBookingService/internal/usecase/get_availability"
	"github.com/m04kA/SMC-RoomBookingService/internal/validator"
)

const msgDateRequired = "параметр date обязателен"

type Handler struct {
	useCase AvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase AvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=&floor=&shift=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseQuery(w, r, "GET /availability")
	if !ok {
		return
	}

	occupancy, err := h.useCase.Execute(r.Context(), query)
	if err != nil {
		h.respondError(w, "GET /availability", err)
		return
	}

	// Ответ - массив занятых слотов, пустой массив если занятых нет
	if occupancy == nil {
		occupancy = []getAvailability.Occupancy{}
	}
	handlers.RespondJSON(w, http.StatusOK, occupancy)
}

// HandleGrid GET /api/v1/availability/grid?date=&floor=&shift=
func (h *Handler) HandleGrid(w http.ResponseWriter, r *http.Request) {
	query, ok := h.parseQuery(w, r, "GET /availability/grid")
	if !ok {
		return
	}

	grid, err := h.useCase.Grid(r.Context(), query)
	if err != nil {
		h.respondError(w, "GET /availability/grid", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, grid)
}

func (h *Handler) parseQuery(w http.ResponseWriter, r *http.Request, route string) (getAvailability.Query, bool) {
	q := r.URL.Query()

	filter, err := validator.ParseFilter(validator.FilterInput{
		Date:         q.Get("date"),
		Floor:        q.Get("floor"),
		Shift:        q.Get("shift"),
		DateRequired: true,
	})
	if err != nil {
		h.logger.Warn("%s - Invalid query: %v", route, err)
		handlers.RespondDomainError(w, err)
		return getAvailability.Query{}, false
	}

	return queryFromFilter(filter), true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	if errors.Is(err, getAvailability.ErrDateRequired) {
		h.logger.Warn("%s - Date is required", route)
		handlers.RespondBadRequest(w, msgDateRequired)
		return
	}
	h.logger.Error("%s - Failed to compute availability: %v", route, err)
	handlers.RespondInternalError(w)
}
