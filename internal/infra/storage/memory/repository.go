package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-BarberBot/internal/infra/storage/appointment"
	customerRepo "github.com/m04kA/SMC-BarberBot/internal/infra/storage/customer"
)

// Repository хранит клиентов и записи в памяти процесса
// Контракт и ошибки совпадают с PostgreSQL репозиториями, весь доступ сериализован одним мьютексом
type Repository struct {
	mu           sync.Mutex
	customers    map[int64]domain.Customer
	appointments map[int64]domain.Appointment
	nextID       int64
	now          func() time.Time
}

// NewRepository создает пустой репозиторий в памяти
func NewRepository() *Repository {
	return &Repository{
		customers:    make(map[int64]domain.Customer),
		appointments: make(map[int64]domain.Appointment),
		now:          time.Now,
	}
}

// Customers

// GetByID получает клиента по идентификатору чата
func (r *Repository) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.customers[id]
	if !ok {
		return nil, customerRepo.ErrCustomerNotFound
	}
	return &c, nil
}

// Upsert создает клиента или обновляет имя и телефон существующего
func (r *Repository) Upsert(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	stored, ok := r.customers[c.ID]
	if !ok {
		stored = domain.Customer{ID: c.ID, CreatedAt: now}
	}
	stored.Name = c.Name
	stored.PhoneNumber = c.PhoneNumber
	stored.UpdatedAt = now
	r.customers[c.ID] = stored

	c.CreatedAt = stored.CreatedAt
	c.UpdatedAt = stored.UpdatedAt
	return c, nil
}

// UpdateName меняет отображаемое имя клиента
func (r *Repository) UpdateName(_ context.Context, id int64, name string) error {
	return r.updateCustomer(id, func(c *domain.Customer) { c.Name = name })
}

// UpdatePhone меняет номер телефона клиента
func (r *Repository) UpdatePhone(_ context.Context, id int64, phone string) error {
	return r.updateCustomer(id, func(c *domain.Customer) { c.PhoneNumber = phone })
}

func (r *Repository) updateCustomer(id int64, apply func(c *domain.Customer)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.customers[id]
	if !ok {
		return customerRepo.ErrCustomerNotFound
	}
	apply(&c)
	c.UpdatedAt = r.now()
	r.customers[id] = c
	return nil
}

// Appointments

// CreateIfFree проверяет пересечение и вставляет запись под одной блокировкой
func (r *Repository) CreateIfFree(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.appointments {
		if existing.Overlaps(appt.StartTime, appt.EndTime) {
			return nil, appointmentRepo.ErrSlotTaken
		}
	}

	r.nextID++
	appt.ID = r.nextID
	appt.CreatedAt = r.now()
	r.appointments[appt.ID] = *appt
	return appt, nil
}

// GetAppointment получает запись по идентификатору
func (r *Repository) GetAppointment(_ context.Context, id int64) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	return &a, nil
}

// FindOverlapping получает записи, пересекающие интервал [from, to), по возрастанию начала
func (r *Repository) FindOverlapping(_ context.Context, from, to time.Time) ([]*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := make([]*domain.Appointment, 0)
	for _, a := range r.appointments {
		if a.Overlaps(from, to) {
			result = append(result, &a)
		}
	}
	sortByStart(result)
	return result, nil
}

// FindActiveByCustomer получает ближайшую незавершённую запись клиента
func (r *Repository) FindActiveByCustomer(_ context.Context, customerID int64, now time.Time) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var active []*domain.Appointment
	for _, a := range r.appointments {
		if a.CustomerID == customerID && a.IsActive(now) {
			active = append(active, &a)
		}
	}
	if len(active) == 0 {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	sortByStart(active)
	return active[0], nil
}

// UpdateCustomerName обновляет снимок имени во всех незавершённых записях клиента
func (r *Repository) UpdateCustomerName(_ context.Context, customerID int64, name string, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var updated int64
	for id, a := range r.appointments {
		if a.CustomerID == customerID && a.IsActive(now) {
			a.CustomerName = name
			r.appointments[id] = a
			updated++
		}
	}
	return updated, nil
}

// DeleteByCustomer удаляет запись, только если она принадлежит клиенту
func (r *Repository) DeleteByCustomer(_ context.Context, id, customerID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.appointments[id]
	if !ok || a.CustomerID != customerID {
		return appointmentRepo.ErrAppointmentNotFound
	}
	delete(r.appointments, id)
	return nil
}

// DeleteBefore удаляет все записи, начавшиеся строго раньше instant
func (r *Repository) DeleteBefore(_ context.Context, instant time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for id, a := range r.appointments {
		if a.StartTime.Before(instant) {
			delete(r.appointments, id)
			deleted++
		}
	}
	return deleted, nil
}

// Len количество записей (для тестов и отладки)
func (r *Repository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.appointments)
}

func sortByStart(appts []*domain.Appointment) {
	sort.Slice(appts, func(i, j int) bool {
		return appts[i].StartTime.Before(appts[j].StartTime)
	})
}
