package conversation

import (
	"time"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
)

// Step название шага разговора
type Step string

const (
	StepIdle                 Step = "idle"
	StepAwaitingPhone        Step = "awaiting_phone"
	StepServiceSelection     Step = "service_selection"
	StepDateSelection        Step = "date_selection"
	StepTimeSelection        Step = "time_selection"
	StepAwaitingConfirmation Step = "awaiting_confirmation"
	StepAwaitingNewName      Step = "awaiting_new_name"
	StepAwaitingNewPhone     Step = "awaiting_new_phone"
)

// State состояние разговора с клиентом
// Каждый вариант несет только данные, собранные к своему шагу
type State interface {
	Step() Step
	sealed()
}

// Idle клиент вне сценария
type Idle struct{}

// AwaitingPhone ждем номер телефона перед записью
type AwaitingPhone struct{}

// ServiceSelection ждем выбор услуги
type ServiceSelection struct{}

// DateSelection услуга выбрана, ждем дату
type DateSelection struct {
	Service domain.ServiceKind
}

// TimeSelection услуга и дата выбраны, ждем время
type TimeSelection struct {
	Service domain.ServiceKind
	Date    time.Time // локальная полночь выбранного дня
}

// AwaitingConfirmation слот выбран, ждем подтверждение
type AwaitingConfirmation struct {
	Service domain.ServiceKind
	Start   time.Time
}

// AwaitingNewName ждем новое имя для профиля
type AwaitingNewName struct{}

// AwaitingNewPhone ждем новый номер для профиля
type AwaitingNewPhone struct{}

func (Idle) Step() Step                 { return StepIdle }
func (AwaitingPhone) Step() Step        { return StepAwaitingPhone }
func (ServiceSelection) Step() Step     { return StepServiceSelection }
func (DateSelection) Step() Step        { return StepDateSelection }
func (TimeSelection) Step() Step        { return StepTimeSelection }
func (AwaitingConfirmation) Step() Step { return StepAwaitingConfirmation }
func (AwaitingNewName) Step() Step      { return StepAwaitingNewName }
func (AwaitingNewPhone) Step() Step     { return StepAwaitingNewPhone }

func (Idle) sealed()                 {}
func (AwaitingPhone) sealed()        {}
func (ServiceSelection) sealed()     {}
func (DateSelection) sealed()        {}
func (TimeSelection) sealed()        {}
func (AwaitingConfirmation) sealed() {}
func (AwaitingNewName) sealed()      {}
func (AwaitingNewPhone) sealed()     {}
