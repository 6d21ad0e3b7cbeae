package get_customer_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
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

type nopNotifier struct{}

func (nopNotifier) Notify(notify.Event) {}

func TestHandler_Handle(t *testing.T) {
	loc := time.FixedZone("AMT", 4*60*60)
	repo := memory.NewRepository()
	customer := &domain.Customer{ID: 7, Name: "Aram"}
	_, err := repo.CreateIfFree(context.Background(),
		domain.NewAppointment(customer, domain.ServiceHaircut, time.Date(2026, 10, 14, 15, 0, 0, 0, loc)))
	require.NoError(t, err)

	svc := bookings.NewService(repo, repo, clock.NewFixed(time.Date(2026, 10, 14, 12, 0, 0, 0, loc)), nopNotifier{}, logger.NewNop())
	h := NewHandler(svc, logger.NewNop())

	call := func(id string) *httptest.ResponseRecorder {
		req := mux.SetURLVars(httptest.NewRequest(http.MethodGet, "/api/v1/customers/"+id+"/appointment", nil),
			map[string]string{"customerId": id})
		rec := httptest.NewRecorder()
		h.Handle(rec, req)
		return rec
	}

	rec := call("7")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.AppointmentResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "Haircut", resp.Service)
	assert.Equal(t, "15:00", resp.StartTime)
	assert.Equal(t, "16:00", resp.EndTime)

	assert.Equal(t, http.StatusNotFound, call("8").Code)
	assert.Equal(t, http.StatusBadRequest, call("abc").Code)
}
