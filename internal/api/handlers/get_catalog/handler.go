package get_catalog

import (
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
)

// Handler отдает справочник; каталог неизменяем, поэтому строится один раз
type Handler struct {
	catalog CatalogResponse
}

func NewHandler() *Handler {
	return &Handler{catalog: buildCatalog()}
}

// Handle GET /api/v1/catalog
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.catalog)
}
