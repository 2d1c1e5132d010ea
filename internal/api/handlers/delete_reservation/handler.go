package delete_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/access"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/reservations"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgNotFound     = "бронирование не найдено"
	msgForbidden    = "удалить бронирование может только его владелец"
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

// Handle DELETE /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("DELETE /reservations/{id} - Missing identity")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	if err := h.service.Delete(r.Context(), reservationID, identity); err != nil {
		switch {
		case errors.Is(err, access.ErrNotFound), errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("DELETE /reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, access.ErrForbidden):
			h.logger.Warn("DELETE /reservations/{id} - Forbidden: reservation_id=%d, user_id=%s", reservationID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, access.ErrUnauthenticated):
			handlers.RespondUnauthorized(w, msgUnauthorized)

		default:
			h.logger.Error("DELETE /reservations/{id} - Failed to delete reservation: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{id} - Reservation deleted successfully: reservation_id=%d, user_id=%s",
		reservationID, identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, DeleteReservationResponse{Success: true})
}
