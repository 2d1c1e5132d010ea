package get_current_user

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
)

const msgUnauthorized = "требуется авторизация"

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle GET /api/v1/users/me
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("GET /users/me - Missing identity")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromIdentity(identity))
}
