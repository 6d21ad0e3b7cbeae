package get_day_appointments

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
	"github.com/m04kA/SMC-BarberBot/internal/notify"
	"github.com/m04kA/SMC-BarberBot/internal/service/bookings"
	"github.com/m04kA/SMC-BarberBot/internal/service/bookings/models"
	"github.com/m04kA/SMC-BarberBot/pkg/logger"
)

var loc = time.FixedZone("AMT", 4*60*60)

type nopNotifier struct{}

func (nopNotifier) Notify(notify.Event) {}

func TestHandler_Handle(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()
	c := clock.NewFixed(time.Date(2026, 10, 14, 8, 0, 0, 0, loc))

	for i, h := range []int{16, 9} {
		customer := &domain.Customer{ID: int64(i + 1), Name: "Client"}
		_, err := repo.CreateIfFree(ctx, domain.NewAppointment(customer, domain.ServiceBeard, time.Date(2026, 10, 14, h, 0, 0, 0, loc)))
		require.NoError(t, err)
	}
	_, err := repo.CreateIfFree(ctx, domain.NewAppointment(&domain.Customer{ID: 3, Name: "Other"}, domain.ServiceHaircut,
		time.Date(2026, 10, 15, 9, 0, 0, 0, loc)))
	require.NoError(t, err)

	svc := bookings.NewService(repo, repo, c, nopNotifier{}, logger.NewNop())
	h := NewHandler(svc, c, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments?date=2026-10-14", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.AppointmentListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, "09:00", resp.Appointments[0].StartTime)
	assert.Equal(t, "16:00", resp.Appointments[1].StartTime)
	assert.Equal(t, "16:30", resp.Appointments[1].EndTime)
}

func TestHandler_Handle_BadRequest(t *testing.T) {
	c := clock.NewFixed(time.Date(2026, 10, 14, 8, 0, 0, 0, loc))
	repo := memory.NewRepository()
	h := NewHandler(bookings.NewService(repo, repo, c, nopNotifier{}, logger.NewNop()), c, logger.NewNop())

	for _, target := range []string{"/api/v1/appointments", "/api/v1/appointments?date=tomorrow"} {
		rec := httptest.NewRecorder()
		h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}
