package create_booking

import (
	"time"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	CustomerID int64              // ID клиента (идентификатор чата)
	Service    domain.ServiceKind // Услуга
	Start      time.Time          // Начало слота в зоне магазина
}

// Response модель ответа с созданной записью
type Response struct {
	ID           int64
	CustomerID   int64
	CustomerName string
	Service      domain.ServiceKind
	StartTime    time.Time
	EndTime      time.Time
	CreatedAt    time.Time
}

func toResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:           a.ID,
		CustomerID:   a.CustomerID,
		CustomerName: a.CustomerName,
		Service:      a.Service,
		StartTime:    a.StartTime,
		EndTime:      a.EndTime,
		CreatedAt:    a.CreatedAt,
	}
}
