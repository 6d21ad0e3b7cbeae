package conversation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
	bookingService "github.com/m04kA/SMC-BarberBot/internal/service/bookings"
	bookingModels "github.com/m04kA/SMC-BarberBot/internal/service/bookings/models"
	customerService "github.com/m04kA/SMC-BarberBot/internal/service/customers"
)

func (m *Machine) showProfile(ctx context.Context, ev *Event) (State, Response) {
	profile, err := m.customers.GetProfile(ctx, ev.CustomerID)
	switch {
	case errors.Is(err, customerService.ErrCustomerNotFound):
		return Idle{}, reply(menuText(msgNoProfile))
	case err != nil:
		return m.fail(ev, "getProfile", err)
	}

	return Idle{}, reply(Message{
		Text:    fmt.Sprintf(msgProfile, profile.Name, profile.PhoneNumber),
		Choices: profileChoices(),
	})
}

func (m *Machine) showAppointment(ctx context.Context, ev *Event) (State, Response) {
	active, err := m.bookings.GetActive(ctx, ev.CustomerID)
	switch {
	case errors.Is(err, bookingService.ErrAppointmentNotFound):
		return Idle{}, reply(menuText(msgNoAppointment))
	case err != nil:
		return m.fail(ev, "getActive", err)
	}
	return Idle{}, reply(appointmentMessage(active))
}

func (m *Machine) cancelAppointment(ctx context.Context, ev *Event) (State, Response) {
	cancelled, err := m.bookings.CancelActive(ctx, ev.CustomerID)
	switch {
	case errors.Is(err, bookingService.ErrAppointmentNotFound):
		return Idle{}, reply(menuText(msgNoAppointment))
	case err != nil:
		return m.fail(ev, "cancelActive", err)
	}
	return Idle{}, reply(menuText(fmt.Sprintf(msgAppointmentRemoved, formatLongDate(cancelled.Start), cancelled.StartTime)))
}

// startEdit переводит зарегистрированного клиента в ожидание нового имени или телефона
func (m *Machine) startEdit(ctx context.Context, ev *Event, next State) (State, Response) {
	_, err := m.customers.GetProfile(ctx, ev.CustomerID)
	switch {
	case errors.Is(err, customerService.ErrCustomerNotFound):
		return Idle{}, reply(menuText(msgNoProfile))
	case err != nil:
		return m.fail(ev, "getProfile", err)
	}

	if _, ok := next.(AwaitingNewPhone); ok {
		return next, reply(Message{Text: msgAskNewPhone, RequestContact: true, Choices: []Choice{cancelChoice()}})
	}
	return next, reply(Message{Text: msgAskNewName, Choices: []Choice{cancelChoice()}})
}

func (m *Machine) onAwaitingNewName(ctx context.Context, ev *Event) (State, Response) {
	if ev.Kind != KindText {
		return AwaitingNewName{}, reply(text(msgAskNewName))
	}

	profile, err := m.customers.Rename(ctx, ev.CustomerID, ev.Text)
	switch {
	case errors.Is(err, customerService.ErrInvalidName):
		return AwaitingNewName{}, reply(text(fmt.Sprintf(msgInvalidName, domain.MaxNameLength)))
	case errors.Is(err, customerService.ErrCustomerNotFound):
		return Idle{}, reply(menuText(msgNoProfile))
	case err != nil:
		return m.fail(ev, "rename", err)
	}
	return Idle{}, reply(menuText(fmt.Sprintf(msgNameChanged, profile.Name)))
}

func (m *Machine) onAwaitingNewPhone(ctx context.Context, ev *Event) (State, Response) {
	var phone string
	switch ev.Kind {
	case KindContact:
		if ev.Contact.UserID != ev.CustomerID {
			return AwaitingNewPhone{}, reply(Message{Text: msgForeignContact, RequestContact: true})
		}
		phone = ev.Contact.PhoneNumber
	case KindText:
		phone = ev.Text
	default:
		return AwaitingNewPhone{}, reply(Message{Text: msgAskNewPhone, RequestContact: true})
	}

	profile, err := m.customers.ChangePhone(ctx, ev.CustomerID, phone)
	switch {
	case errors.Is(err, customerService.ErrInvalidPhone):
		return AwaitingNewPhone{}, reply(Message{Text: msgInvalidPhone, RequestContact: true})
	case errors.Is(err, customerService.ErrCustomerNotFound):
		return Idle{}, reply(menuText(msgNoProfile))
	case err != nil:
		return m.fail(ev, "changePhone", err)
	}
	return Idle{}, reply(menuText(fmt.Sprintf(msgPhoneChanged, profile.PhoneNumber)))
}

func appointmentMessage(a *bookingModels.AppointmentResponse) Message {
	return Message{
		Text:    fmt.Sprintf(msgAppointment, a.Service, formatLongDate(a.Start), a.StartTime, a.EndTime),
		Choices: appointmentChoices(),
	}
}
