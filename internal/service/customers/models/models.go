package models

import "github.com/m04kA/SMC-BarberBot/internal/domain"

// RegisterPhoneRequest запрос на сохранение телефона клиента
type RegisterPhoneRequest struct {
	CustomerID  int64
	PhoneNumber string // как ввел клиент, нормализуется сервисом
	Name        string // имя из контакта или профиля чата
}

// ProfileResponse данные профиля клиента
type ProfileResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

// FromDomainCustomer конвертирует domain модель в response
func FromDomainCustomer(c *domain.Customer) *ProfileResponse {
	return &ProfileResponse{
		ID:          c.ID,
		Name:        c.Name,
		PhoneNumber: c.PhoneNumber,
	}
}
