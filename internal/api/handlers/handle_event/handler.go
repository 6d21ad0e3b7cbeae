package handle_event

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BarberBot/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBot/internal/conversation"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidEvent       = "некорректное событие: нужен customerId и kind command|text|callback|contact"
)

type Handler struct {
	machine ConversationMachine
	logger  Logger
}

func NewHandler(machine ConversationMachine, logger Logger) *Handler {
	return &Handler{
		machine: machine,
		logger:  logger,
	}
}

// Handle POST /api/v1/events
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /events - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	resp, err := h.machine.Handle(r.Context(), req.ToEvent())
	if err != nil {
		switch {
		case errors.Is(err, conversation.ErrInvalidEvent):
			h.logger.Warn("POST /events - Invalid event: customer_id=%d, kind=%q: %v", req.CustomerID, req.Kind, err)
			handlers.RespondBadRequest(w, msgInvalidEvent)

		default:
			h.logger.Error("POST /events - Failed to handle event: customer_id=%d, error=%v", req.CustomerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /events - Event handled: customer_id=%d, kind=%s, messages=%d",
		req.CustomerID, req.Kind, len(resp.Messages))
	handlers.RespondJSON(w, http.StatusOK, FromConversationResponse(resp))
}
