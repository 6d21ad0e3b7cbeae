package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBot/internal/clock"
	"github.com/m04kA/SMC-BarberBot/internal/domain"
	"github.com/m04kA/SMC-BarberBot/internal/infra/storage/memory"
	getAvailableSlots "github.com/m04kA/SMC-BarberBot/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BarberBot/pkg/logger"
)

var loc = time.FixedZone("AMT", 4*60*60)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	now := time.Date(2026, 10, 14, 14, 30, 0, 0, loc)
	c := clock.NewFixed(now)
	repo := memory.NewRepository()

	customer := &domain.Customer{ID: 1, Name: "Aram"}
	_, err := repo.CreateIfFree(context.Background(),
		domain.NewAppointment(customer, domain.ServiceHaircut, time.Date(2026, 10, 15, 10, 0, 0, 0, loc)))
	require.NoError(t, err)

	uc := getAvailableSlots.NewUseCase(repo, c, domain.BusinessHours{OpenHour: 9, CloseHour: 20}, 7, logger.NewNop())
	return NewHandler(uc, c, logger.NewNop())
}

func get(h *Handler, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/slots"+query, nil)
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	h := newHandler(t)

	rec := get(h, "?date=2026-10-14")
	require.Equal(t, http.StatusOK, rec.Code)

	var today SlotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&today))
	assert.Equal(t, "2026-10-14", today.Date)
	assert.Equal(t, []string{"15:00", "16:00", "17:00", "18:00", "19:00"}, today.Slots)

	rec = get(h, "?date=2026-10-15")
	require.Equal(t, http.StatusOK, rec.Code)

	var tomorrow SlotsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tomorrow))
	assert.Len(t, tomorrow.Slots, 10)
	assert.NotContains(t, tomorrow.Slots, "10:00")
}

func TestHandler_Handle_BadRequest(t *testing.T) {
	h := newHandler(t)

	for _, query := range []string{"", "?date=14.10.2026", "?date=2026-10-13", "?date=2026-10-21"} {
		assert.Equal(t, http.StatusBadRequest, get(h, query).Code, query)
	}
}
