package update_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/access"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/reservations/models"
	updateReservation "github.com/m04kA/SMC-RoomBookingService/internal/usecase/update_reservation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgUnauthorized       = "требуется авторизация"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "изменять бронирование может только его владелец"
)

type Handler struct {
	useCase UpdateReservationUseCase
	logger  Logger
}

func NewHandler(useCase UpdateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/reservations/{reservationId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("PUT /reservations/{id} - Missing identity")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	// Нечисловой id не может существовать
	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondNotFound(w, msgNotFound)
		return
	}

	var req UpdateReservationRequest
	if decodeErr := handlers.DecodeJSON(r, &req); decodeErr != nil {
		// Чужому пользователю отвечаем 403 независимо от тела запроса
		if err := h.useCase.CheckAccess(r.Context(), reservationID, identity); err != nil {
			h.respondError(w, reservationID, identity, err)
			return
		}
		h.logger.Warn("PUT /reservations/{id} - Invalid request body: %v", decodeErr)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	updated, err := h.useCase.Execute(r.Context(), &updateReservation.Request{
		ID:     reservationID,
		Caller: identity,
		Patch:  req.ToPatch(),
	})
	if err != nil {
		h.respondError(w, reservationID, identity, err)
		return
	}

	h.logger.Info("PUT /reservations/{id} - Reservation updated successfully: reservation_id=%d, user_id=%s",
		reservationID, identity.UserID)
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainReservation(updated))
}

func (h *Handler) respondError(w http.ResponseWriter, reservationID int64, identity domain.Identity, err error) {
	switch {
	case errors.Is(err, access.ErrNotFound):
		h.logger.Warn("PUT /reservations/{id} - Reservation not found: reservation_id=%d", reservationID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, access.ErrForbidden):
		h.logger.Warn("PUT /reservations/{id} - Forbidden: reservation_id=%d, user_id=%s", reservationID, identity.UserID)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, access.ErrUnauthenticated):
		handlers.RespondUnauthorized(w, msgUnauthorized)

	default:
		if handlers.RespondDomainError(w, err) {
			h.logger.Warn("PUT /reservations/{id} - Rejected: reservation_id=%d, error=%v", reservationID, err)
			return
		}
		h.logger.Error("PUT /reservations/{id} - Failed to update reservation: reservation_id=%d, error=%v", reservationID, err)
		handlers.RespondInternalError(w)
	}
}
