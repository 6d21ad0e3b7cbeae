package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
	"github.com/m04kA/SMC-BarberBot/pkg/metrics"
)

const defaultAssistantTimeout = 10 * time.Second

// Config витрина магазина для ответов клиенту
type Config struct {
	ShopName         string
	ContactInfo      string
	HaircutPrice     string
	BeardPrice       string
	Hours            domain.BusinessHours
	AssistantTimeout time.Duration
}

// Machine конечный автомат записи: одно входящее событие переводит состояние клиента в следующее
type Machine struct {
	store        *Store
	availability Availability
	booker       BookingCreator
	customers    CustomerService
	bookings     BookingService
	assistant    Assistant
	clock        Clock
	metrics      Metrics
	cfg          Config
	logger       Logger
}

// NewMachine создает автомат; assistant может быть nil, тогда на свободный текст отвечает заготовка
func NewMachine(
	store *Store,
	availability Availability,
	booker BookingCreator,
	customers CustomerService,
	bookings BookingService,
	assistant Assistant,
	clock Clock,
	m Metrics,
	cfg Config,
	logger Logger,
) *Machine {
	if cfg.AssistantTimeout <= 0 {
		cfg.AssistantTimeout = defaultAssistantTimeout
	}
	if cfg.ShopName == "" {
		cfg.ShopName = domain.DefaultShopName
	}
	return &Machine{
		store:        store,
		availability: availability,
		booker:       booker,
		customers:    customers,
		bookings:     bookings,
		assistant:    assistant,
		clock:        clock,
		metrics:      m,
		cfg:          cfg,
		logger:       logger,
	}
}

// Handle обрабатывает событие клиента
// События одного клиента обрабатываются строго по очереди
func (m *Machine) Handle(ctx context.Context, ev Event) (Response, error) {
	if err := ev.Validate(); err != nil {
		return Response{}, err
	}

	unlock := m.store.Lock(ev.CustomerID)
	defer unlock()

	state := m.store.Get(ev.CustomerID)
	next, resp := m.transition(ctx, &ev, state)
	m.store.Set(ev.CustomerID, next)

	if state.Step() != next.Step() {
		m.logger.Info("Conversation: customer=%d %s -> %s", ev.CustomerID, state.Step(), next.Step())
	}
	return resp, nil
}

// State текущее состояние клиента
func (m *Machine) State(customerID int64) State {
	return m.store.Get(customerID)
}

func (m *Machine) transition(ctx context.Context, ev *Event, state State) (State, Response) {
	// Главное меню и кнопки профиля работают из любого состояния
	if next, resp, ok := m.global(ctx, ev); ok {
		return next, resp
	}

	switch st := state.(type) {
	case Idle:
		return m.onIdle(ctx, ev)
	case AwaitingPhone:
		return m.onAwaitingPhone(ctx, ev)
	case ServiceSelection:
		return m.onServiceSelection(ctx, ev, st)
	case DateSelection:
		return m.onDateSelection(ctx, ev, st)
	case TimeSelection:
		return m.onTimeSelection(ctx, ev, st)
	case AwaitingConfirmation:
		return m.onAwaitingConfirmation(ctx, ev, st)
	case AwaitingNewName:
		return m.onAwaitingNewName(ctx, ev)
	case AwaitingNewPhone:
		return m.onAwaitingNewPhone(ctx, ev)
	default:
		m.logger.Error("Conversation: customer=%d has unknown state %T", ev.CustomerID, state)
		return Idle{}, reply(menuText(msgSomethingWrong))
	}
}

// global обрабатывает триггеры меню; переход в другое меню сбрасывает текущий сценарий
func (m *Machine) global(ctx context.Context, ev *Event) (State, Response, bool) {
	switch ev.Kind {
	case KindCommand, KindText:
		switch strings.TrimSpace(ev.Text) {
		case CommandStart:
			return Idle{}, reply(menuText(fmt.Sprintf(msgWelcome, m.cfg.ShopName))), true
		case MenuBook, CommandBook:
			next, resp := m.startBooking(ctx, ev)
			return next, resp, true
		case MenuServices:
			return Idle{}, reply(menuText(fmt.Sprintf(msgServices,
				m.cfg.HaircutPrice, m.cfg.BeardPrice, m.cfg.Hours.OpenHour, m.cfg.Hours.CloseHour))), true
		case MenuContact:
			return Idle{}, reply(menuText(fmt.Sprintf(msgContact, m.cfg.ContactInfo, m.cfg.ShopName))), true
		case MenuProfile:
			next, resp := m.showProfile(ctx, ev)
			return next, resp, true
		case MenuAppointment:
			next, resp := m.showAppointment(ctx, ev)
			return next, resp, true
		case MenuCancel, CommandCancel:
			return Idle{}, reply(menuText(msgCancelled)), true
		}
	case KindCallback:
		switch ev.Data {
		case CallbackCancel:
			return Idle{}, reply(menuText(msgCancelled)), true
		case CallbackEditName:
			next, resp := m.startEdit(ctx, ev, AwaitingNewName{})
			return next, resp, true
		case CallbackEditPhone:
			next, resp := m.startEdit(ctx, ev, AwaitingNewPhone{})
			return next, resp, true
		case CallbackCancelAppointment:
			next, resp := m.cancelAppointment(ctx, ev)
			return next, resp, true
		}
	}
	return nil, Response{}, false
}

func (m *Machine) onIdle(ctx context.Context, ev *Event) (State, Response) {
	switch ev.Kind {
	case KindCommand, KindText:
		return m.fallback(ctx, ev, Idle{})
	case KindCallback:
		// Кнопка от сценария, который уже завершен или потерян при рестарте
		return Idle{}, reply(menuText(msgStaleChoice))
	default:
		return Idle{}, reply(menuText(msgUnknownChoice))
	}
}

// fallback отвечает на свободный текст, не меняя состояние
func (m *Machine) fallback(ctx context.Context, ev *Event, state State) (State, Response) {
	utterance := strings.TrimSpace(ev.Text)
	showMenu := state.Step() == StepIdle

	switch {
	case isConfirmation(utterance):
		return state, reply(menuText(msgConfirmWord))
	case isGreeting(utterance):
		return state, reply(Message{Text: msgGreeting, ShowMenu: showMenu})
	}

	return state, reply(Message{Text: m.askAssistant(ctx, utterance), ShowMenu: showMenu})
}

// askAssistant спрашивает внешнего ассистента с сегодняшними свободными слотами в контексте
// Ответ ассистента только текст и никогда не меняет состояние
func (m *Machine) askAssistant(ctx context.Context, utterance string) string {
	if m.assistant == nil || utterance == "" {
		return m.cannedApology()
	}

	now := m.clock.Now()
	summary := "unknown"
	if slots, err := m.availability.AvailableSlots(ctx, now); err != nil {
		m.logger.Warn("Conversation: failed to get today's slots for assistant: %v", err)
	} else {
		summary = slotSummary(slots)
	}

	actx, cancel := context.WithTimeout(ctx, m.cfg.AssistantTimeout)
	defer cancel()

	answer, err := m.assistant.Complete(actx, m.systemPrompt(now, summary), utterance)
	if err != nil || strings.TrimSpace(answer) == "" {
		m.logger.Warn("Conversation: assistant unavailable, using canned reply: %v", err)
		m.metrics.IncAssistant(metrics.ResultError)
		return m.cannedApology()
	}

	m.metrics.IncAssistant(metrics.ResultOK)
	return strings.TrimSpace(answer)
}

func (m *Machine) systemPrompt(now time.Time, freeSlots string) string {
	return fmt.Sprintf(
		"You are the assistant of %s, a barbershop. Answer briefly and only about the barbershop.\n"+
			"Services: Haircut (60 minutes, %s), Beard (30 minutes, %s).\n"+
			"Working hours: %02d:00-%02d:00. Contact: %s.\n"+
			"Today is %s. Free times today: %s.\n"+
			"You cannot book or cancel appointments. Ask the customer to use the \"%s\" button for booking.",
		m.cfg.ShopName, m.cfg.HaircutPrice, m.cfg.BeardPrice,
		m.cfg.Hours.OpenHour, m.cfg.Hours.CloseHour, m.cfg.ContactInfo,
		formatLongDate(now), freeSlots, MenuBook,
	)
}

func (m *Machine) cannedApology() string {
	return fmt.Sprintf(msgAssistantFallback, m.cfg.ShopName, m.cfg.HaircutPrice, m.cfg.BeardPrice)
}

// fail логирует внутреннюю ошибку и возвращает клиента в главное меню
func (m *Machine) fail(ev *Event, op string, err error) (State, Response) {
	m.logger.Error("Conversation: %s failed for customer=%d: %v", op, ev.CustomerID, err)
	return Idle{}, reply(menuText(msgSomethingWrong))
}

func (m *Machine) today() time.Time {
	now := m.clock.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}

func splitCallback(data string) (action, value string) {
	action, value, _ = strings.Cut(data, ":")
	return action, value
}
