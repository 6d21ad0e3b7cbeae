package conversation

import (
	"errors"
	"fmt"
)

// EventKind тип входящего события от чат-транспорта
type EventKind string

const (
	KindCommand  EventKind = "command"
	KindText     EventKind = "text"
	KindCallback EventKind = "callback"
	KindContact  EventKind = "contact"
)

// ErrInvalidEvent возвращается для события неизвестного типа или без идентификатора
var ErrInvalidEvent = errors.New("conversation: invalid event")

// Contact контакт, которым поделился клиент
type Contact struct {
	UserID      int64
	PhoneNumber string
	FirstName   string
	LastName    string
}

// Event входящее событие, привязанное к клиенту
type Event struct {
	CustomerID int64
	Kind       EventKind
	Text       string   // команда или свободный текст
	Data       string   // данные нажатой кнопки
	SenderName string   // имя из профиля чата
	Contact    *Contact // только для KindContact
}

// Validate проверяет обязательные поля события
func (e *Event) Validate() error {
	if e.CustomerID == 0 {
		return fmt.Errorf("%w: customer id is required", ErrInvalidEvent)
	}
	switch e.Kind {
	case KindCommand, KindText, KindCallback:
		return nil
	case KindContact:
		if e.Contact == nil {
			return fmt.Errorf("%w: contact payload is required", ErrInvalidEvent)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidEvent, e.Kind)
	}
}

// Choice кнопка выбора под сообщением
type Choice struct {
	Label string
	Data  string
}

// Message исходящее сообщение клиенту
type Message struct {
	Text           string
	Choices        []Choice
	RequestContact bool // показать кнопку "поделиться контактом"
	ShowMenu       bool // показать главное меню
}

// Response ответ на одно входящее событие
type Response struct {
	Messages []Message
}

func reply(messages ...Message) Response {
	return Response{Messages: messages}
}

func text(t string) Message {
	return Message{Text: t}
}

func menuText(t string) Message {
	return Message{Text: t, ShowMenu: true}
}
