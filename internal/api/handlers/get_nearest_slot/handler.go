package get_nearest_slot

import (
	"net/http"

	"github.com/m04kA/SMC-BarberBot/internal/api/handlers"
)

type Handler struct {
	availability Availability
	clock        Clock
	logger       Logger
}

func NewHandler(availability Availability, clock Clock, logger Logger) *Handler {
	return &Handler{
		availability: availability,
		clock:        clock,
		logger:       logger,
	}
}

// Handle GET /api/v1/slots/nearest
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	nearest, found, err := h.availability.NearestSlot(r.Context())
	if err != nil {
		h.logger.Error("GET /slots/nearest - Failed to find nearest slot: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	response := FromNearestSlot(nearest, found, h.clock.Today())

	h.logger.Info("GET /slots/nearest - found=%t, day=%s, time=%s", found, response.DayLabel, response.Time)
	handlers.RespondJSON(w, http.StatusOK, response)
}
