package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
	bookingService "github.com/m04kA/SMC-BarberBot/internal/service/bookings"
	customerService "github.com/m04kA/SMC-BarberBot/internal/service/customers"
	customerModels "github.com/m04kA/SMC-BarberBot/internal/service/customers/models"
	"github.com/m04kA/SMC-BarberBot/internal/usecase/create_booking"
)

// startBooking начинает запись: без телефона просим номер, с будущей записью показываем её
func (m *Machine) startBooking(ctx context.Context, ev *Event) (State, Response) {
	profile, err := m.customers.GetProfile(ctx, ev.CustomerID)
	switch {
	case errors.Is(err, customerService.ErrCustomerNotFound):
		return askPhone()
	case err != nil:
		return m.fail(ev, "startBooking", err)
	}
	if profile.PhoneNumber == "" {
		return askPhone()
	}

	active, err := m.bookings.GetActive(ctx, ev.CustomerID)
	switch {
	case err == nil:
		return Idle{}, reply(text(msgAlreadyBooked), appointmentMessage(active))
	case !errors.Is(err, bookingService.ErrAppointmentNotFound):
		return m.fail(ev, "startBooking", err)
	}

	return ServiceSelection{}, reply(chooseService())
}

func (m *Machine) onAwaitingPhone(ctx context.Context, ev *Event) (State, Response) {
	var phone, name string

	switch ev.Kind {
	case KindContact:
		if ev.Contact.UserID != ev.CustomerID {
			return AwaitingPhone{}, reply(Message{Text: msgForeignContact, RequestContact: true})
		}
		phone = ev.Contact.PhoneNumber
		name = domain.JoinName(ev.Contact.FirstName, ev.Contact.LastName)
	case KindText, KindCommand:
		phone = ev.Text
		name = ev.SenderName
	default:
		return askPhone()
	}

	profile, err := m.customers.RegisterPhone(ctx, &customerModels.RegisterPhoneRequest{
		CustomerID:  ev.CustomerID,
		PhoneNumber: phone,
		Name:        name,
	})
	switch {
	case errors.Is(err, customerService.ErrInvalidPhone):
		return AwaitingPhone{}, reply(Message{Text: msgInvalidPhone, RequestContact: true})
	case err != nil:
		return m.fail(ev, "registerPhone", err)
	}

	return ServiceSelection{}, reply(text(fmt.Sprintf(msgPhoneSaved, profile.Name)), chooseService())
}

func (m *Machine) onServiceSelection(ctx context.Context, ev *Event, st ServiceSelection) (State, Response) {
	switch ev.Kind {
	case KindText, KindCommand:
		return m.fallback(ctx, ev, st)
	case KindCallback:
		action, value := splitCallback(ev.Data)
		if action == CallbackService {
			if service, err := domain.ParseServiceKind(value); err == nil {
				return DateSelection{Service: service}, reply(m.chooseDate(msgChooseDate))
			}
		}
	}
	return st, reply(Message{Text: msgUnknownChoice, Choices: serviceChoices()})
}

func (m *Machine) onDateSelection(ctx context.Context, ev *Event, st DateSelection) (State, Response) {
	switch ev.Kind {
	case KindText, KindCommand:
		return m.fallback(ctx, ev, st)
	case KindCallback:
		action, value := splitCallback(ev.Data)
		if action != CallbackDate {
			break
		}

		day, err := m.clock.ParseDate(value)
		if err != nil || !m.availability.IsWithinHorizon(day) {
			return st, reply(m.chooseDate(msgDateUnavailable))
		}

		slots, err := m.availability.AvailableSlots(ctx, day)
		if err != nil {
			return m.fail(ev, "availableSlots", err)
		}
		if len(slots) == 0 {
			return m.noSlots(ctx, ev, st.Service, day, "")
		}

		return TimeSelection{Service: st.Service, Date: day}, reply(chooseTime(day, m.today(), slots, msgChooseTime))
	}
	return st, reply(m.chooseDate(msgUnknownChoice))
}

func (m *Machine) onTimeSelection(ctx context.Context, ev *Event, st TimeSelection) (State, Response) {
	switch ev.Kind {
	case KindText, KindCommand:
		return m.fallback(ctx, ev, st)
	case KindCallback:
		action, value := splitCallback(ev.Data)
		switch action {
		case CallbackDate:
			// Клиент передумал и выбрал другой день в старом сообщении
			return m.onDateSelection(ctx, ev, DateSelection{Service: st.Service})
		case CallbackTime:
			return m.chooseSlot(ctx, ev, st, value)
		}
	}

	slots, err := m.availability.AvailableSlots(ctx, st.Date)
	if err != nil {
		return m.fail(ev, "availableSlots", err)
	}
	return st, reply(Message{Text: msgUnknownChoice, Choices: timeChoices(slots)})
}

// chooseSlot принимает время, только если оно есть среди свежих свободных слотов дня
func (m *Machine) chooseSlot(ctx context.Context, ev *Event, st TimeSelection, value string) (State, Response) {
	slots, err := m.availability.AvailableSlots(ctx, st.Date)
	if err != nil {
		return m.fail(ev, "availableSlots", err)
	}

	start, ok := findSlot(st.Date, value, slots)
	if !ok {
		if len(slots) == 0 {
			return m.noSlots(ctx, ev, st.Service, st.Date, "")
		}
		return st, reply(chooseTime(st.Date, m.today(), slots, msgTimeUnavailable))
	}

	profile, err := m.customers.GetProfile(ctx, ev.CustomerID)
	switch {
	case errors.Is(err, customerService.ErrCustomerNotFound):
		return askPhone()
	case err != nil:
		return m.fail(ev, "getProfile", err)
	}

	return AwaitingConfirmation{Service: st.Service, Start: start}, reply(Message{
		Text: fmt.Sprintf(msgConfirm,
			profile.Name, st.Service, formatLongDate(start), start.Format(domain.TimeFormat)),
		Choices: confirmChoices(),
	})
}

func (m *Machine) onAwaitingConfirmation(ctx context.Context, ev *Event, st AwaitingConfirmation) (State, Response) {
	switch ev.Kind {
	case KindText, KindCommand:
		// слово согласия на этом шаге равносильно кнопке подтверждения
		if ev.Kind == KindText && isConfirmation(ev.Text) {
			return m.confirm(ctx, ev, st)
		}
		return m.fallback(ctx, ev, st)
	case KindCallback:
		if ev.Data == CallbackConfirm {
			return m.confirm(ctx, ev, st)
		}
	}
	return st, reply(Message{Text: msgUnknownChoice, Choices: confirmChoices()})
}

// confirm создает запись; занятость слота перепроверяется при вставке
func (m *Machine) confirm(ctx context.Context, ev *Event, st AwaitingConfirmation) (State, Response) {
	created, err := m.booker.Execute(ctx, &create_booking.Request{
		CustomerID: ev.CustomerID,
		Service:    st.Service,
		Start:      st.Start,
	})

	day := time.Date(st.Start.Year(), st.Start.Month(), st.Start.Day(), 0, 0, 0, 0, st.Start.Location())

	switch {
	case err == nil:
		return Idle{}, reply(menuText(fmt.Sprintf(msgBooked,
			created.CustomerName, created.Service, formatLongDate(created.StartTime), created.StartTime.Format(domain.TimeFormat))))

	case errors.Is(err, create_booking.ErrSlotNotAvailable), errors.Is(err, create_booking.ErrSlotInPast):
		notice := fmt.Sprintf(msgSlotTaken, st.Start.Format(domain.TimeFormat), inlineDay(day, m.today()))
		return m.offerFreshSlots(ctx, ev, st.Service, day, notice)

	case errors.Is(err, create_booking.ErrActiveAppointmentExists):
		active, getErr := m.bookings.GetActive(ctx, ev.CustomerID)
		if getErr != nil {
			return Idle{}, reply(menuText(msgAlreadyBooked))
		}
		return Idle{}, reply(text(msgAlreadyBooked), appointmentMessage(active))

	case errors.Is(err, create_booking.ErrCustomerNotFound):
		return askPhone()

	case errors.Is(err, create_booking.ErrInternal):
		return m.fail(ev, "createBooking", err)

	default:
		// Выбор устарел (например, день вышел за горизонт), начинаем с выбора даты
		m.logger.Warn("Conversation: customer=%d booking rejected: %v", ev.CustomerID, err)
		return DateSelection{Service: st.Service}, reply(m.chooseDate(msgDateUnavailable))
	}
}

// offerFreshSlots после конфликта предлагает пересчитанные слоты того же дня или выбор другого дня
func (m *Machine) offerFreshSlots(ctx context.Context, ev *Event, service domain.ServiceKind, day time.Time, notice string) (State, Response) {
	slots, err := m.availability.AvailableSlots(ctx, day)
	if err != nil {
		return m.fail(ev, "availableSlots", err)
	}
	if len(slots) == 0 {
		return m.noSlots(ctx, ev, service, day, notice)
	}

	msg := chooseTime(day, m.today(), slots, msgChooseTime)
	msg.Text = notice + "\n" + msg.Text
	return TimeSelection{Service: service, Date: day}, reply(msg)
}

// noSlots оставляет клиента на выборе даты и подсказывает ближайший свободный слот
func (m *Machine) noSlots(ctx context.Context, ev *Event, service domain.ServiceKind, day time.Time, notice string) (State, Response) {
	today := m.today()

	body := fmt.Sprintf(msgNoSlotsDay, inlineDay(day, today))
	if notice != "" {
		body = notice + "\n" + body
	}

	nearest, found, err := m.availability.NearestSlot(ctx)
	switch {
	case err != nil:
		m.logger.Warn("Conversation: customer=%d nearest slot lookup failed: %v", ev.CustomerID, err)
	case found:
		body += "\n" + nearestLabel(nearest, today)
	default:
		body += "\n" + fmt.Sprintf(msgNoSlotsHorizon, len(m.availability.Days()))
	}

	return DateSelection{Service: service}, reply(m.chooseDate(body))
}

func askPhone() (State, Response) {
	return AwaitingPhone{}, reply(Message{Text: msgAskPhone, RequestContact: true})
}

func chooseService() Message {
	return Message{Text: msgChooseService, Choices: serviceChoices()}
}

func (m *Machine) chooseDate(prompt string) Message {
	return Message{Text: prompt, Choices: dateChoices(m.availability.Days(), m.today())}
}

func chooseTime(day, today time.Time, slots []domain.TimeSlot, format string) Message {
	return Message{Text: fmt.Sprintf(format, dayLabel(day, today)), Choices: timeChoices(slots)}
}

// findSlot сопоставляет "HH:MM" со слотом выбранного дня
func findSlot(day time.Time, value string, slots []domain.TimeSlot) (time.Time, bool) {
	t, err := time.Parse(domain.TimeFormat, value)
	if err != nil {
		return time.Time{}, false
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), 0, 0, day.Location())

	for _, s := range slots {
		if s.Start.Equal(start) {
			return s.Start, true
		}
	}
	return time.Time{}, false
}
