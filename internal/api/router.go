// Package api собирает HTTP роутер сервиса бронирования переговорных.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	createReservationHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/create_reservation"
	deleteReservationHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/delete_reservation"
	getAvailabilityHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_availability"
	getCatalogHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_catalog"
	getCurrentUserHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_current_user"
	getReservationHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/get_reservation"
	listReservationsHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/list_reservations"
	updateReservationHandler "github.com/m04kA/SMC-RoomBookingService/internal/api/handlers/update_reservation"
	"github.com/m04kA/SMC-RoomBookingService/internal/api/middleware"
)

// Handlers обработчики всех операций API
type Handlers struct {
	ListReservations  *listReservationsHandler.Handler
	GetReservation    *getReservationHandler.Handler
	CreateReservation *createReservationHandler.Handler
	UpdateReservation *updateReservationHandler.Handler
	DeleteReservation *deleteReservationHandler.Handler
	Availability      *getAvailabilityHandler.Handler
	CurrentUser       *getCurrentUserHandler.Handler
	Catalog           *getCatalogHandler.Handler
}

// Options инфраструктура роутера. RateLimiter, Recorder и MetricsHandler могут быть nil.
type Options struct {
	Auth           *middleware.Authenticator
	RateLimiter    *middleware.RateLimiter
	Recorder       middleware.HTTPRecorder
	MetricsHandler http.Handler
	MetricsPath    string
	Logger         middleware.Logger
}

type healthResponse struct {
	Status string `json:"status"`
}

// NewRouter регистрирует публичные и защищенные маршруты
func NewRouter(h Handlers, opts Options) *mux.Router {
	r := mux.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(opts.Logger))
	r.Use(middleware.AccessLog(opts.Logger))
	if opts.Recorder != nil {
		r.Use(middleware.Metrics(opts.Recorder))
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		handlers.RespondJSON(w, http.StatusOK, healthResponse{Status: "ok"})
	}).Methods(http.MethodGet)

	if opts.MetricsHandler != nil && opts.MetricsPath != "" {
		r.Handle(opts.MetricsPath, opts.MetricsHandler).Methods(http.MethodGet)
	}

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(opts.Auth.Auth)
	if opts.RateLimiter != nil {
		api.Use(opts.RateLimiter.Limit)
	}

	// --- Бронирования ---
	api.HandleFunc("/reservations", h.ListReservations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations", h.CreateReservation.Handle).Methods(http.MethodPost)
	api.HandleFunc("/reservations/{reservationId}", h.GetReservation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/reservations/{reservationId}", h.UpdateReservation.Handle).Methods(http.MethodPut)
	api.HandleFunc("/reservations/{reservationId}", h.DeleteReservation.Handle).Methods(http.MethodDelete)

	// --- Доступность ---
	api.HandleFunc("/availability", h.Availability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/availability/grid", h.Availability.HandleGrid).Methods(http.MethodGet)

	// --- Справочники и пользователь ---
	api.HandleFunc("/catalog", h.Catalog.Handle).Methods(http.MethodGet)
	api.HandleFunc("/users/me", h.CurrentUser.Handle).Methods(http.MethodGet)

	return r
}
