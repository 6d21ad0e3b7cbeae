package get_nearest_slot

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBot/internal/clock"
	"github.com/m04kA/SMC-BarberBot/internal/domain"
	"github.com/m04kA/SMC-BarberBot/pkg/logger"
)

var loc = time.FixedZone("AMT", 4*60*60)

type stubAvailability struct {
	slot  domain.NearestSlot
	found bool
	err   error
}

func (s stubAvailability) NearestSlot(context.Context) (domain.NearestSlot, bool, error) {
	return s.slot, s.found, s.err
}

func call(t *testing.T, a Availability) (int, NearestSlotResponse) {
	t.Helper()
	c := clock.NewFixed(time.Date(2026, 10, 14, 20, 15, 0, 0, loc))
	h := NewHandler(a, c, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/slots/nearest", nil))

	var resp NearestSlotResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	}
	return rec.Code, resp
}

func TestHandler_Handle(t *testing.T) {
	tomorrow := time.Date(2026, 10, 15, 9, 0, 0, 0, loc)
	code, resp := call(t, stubAvailability{slot: domain.NearestSlot{Slot: domain.TimeSlot{Start: tomorrow}}, found: true})
	require.Equal(t, http.StatusOK, code)
	assert.True(t, resp.Found)
	assert.Equal(t, "tomorrow", resp.DayLabel)
	assert.Equal(t, "09:00", resp.Time)
	require.NotNil(t, resp.Start)
	assert.True(t, tomorrow.Equal(*resp.Start))

	later := time.Date(2026, 10, 17, 12, 0, 0, 0, loc)
	_, resp = call(t, stubAvailability{slot: domain.NearestSlot{Slot: domain.TimeSlot{Start: later}}, found: true})
	assert.Equal(t, "2026-10-17", resp.DayLabel)

	_, resp = call(t, stubAvailability{found: false})
	assert.False(t, resp.Found)
	assert.Nil(t, resp.Start)
}

func TestHandler_Handle_Error(t *testing.T) {
	code, _ := call(t, stubAvailability{err: errors.New("db down")})
	assert.Equal(t, http.StatusInternalServerError, code)
}
