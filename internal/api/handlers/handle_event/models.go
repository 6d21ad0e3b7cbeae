package handle_event

import (
	"github.com/m04kA/SMC-BarberBot/internal/conversation"
)

// EventRequest HTTP модель входящего события чата
type EventRequest struct {
	CustomerID int64           `json:"customerId"`
	Kind       string          `json:"kind"` // command|text|callback|contact
	Text       string          `json:"text,omitempty"`
	Data       string          `json:"data,omitempty"`
	SenderName string          `json:"senderName,omitempty"`
	Contact    *ContactRequest `json:"contact,omitempty"`
}

// ContactRequest контакт, отправленный клиентом
type ContactRequest struct {
	UserID      int64  `json:"userId"`
	PhoneNumber string `json:"phoneNumber"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
}

// EventResponse HTTP модель ответа: сообщения для отправки клиенту
type EventResponse struct {
	Messages []MessageResponse `json:"messages"`
}

type MessageResponse struct {
	Text           string           `json:"text"`
	Choices        []ChoiceResponse `json:"choices,omitempty"`
	RequestContact bool             `json:"requestContact"`
	ShowMenu       bool             `json:"showMenu"`
}

type ChoiceResponse struct {
	Label string `json:"label"`
	Data  string `json:"data"`
}

// ToEvent конвертирует HTTP запрос в событие автомата
func (r *EventRequest) ToEvent() conversation.Event {
	ev := conversation.Event{
		CustomerID: r.CustomerID,
		Kind:       conversation.EventKind(r.Kind),
		Text:       r.Text,
		Data:       r.Data,
		SenderName: r.SenderName,
	}
	if r.Contact != nil {
		ev.Contact = &conversation.Contact{
			UserID:      r.Contact.UserID,
			PhoneNumber: r.Contact.PhoneNumber,
			FirstName:   r.Contact.FirstName,
			LastName:    r.Contact.LastName,
		}
	}
	return ev
}

// FromConversationResponse конвертирует ответ автомата в HTTP response
func FromConversationResponse(resp conversation.Response) *EventResponse {
	out := &EventResponse{Messages: make([]MessageResponse, 0, len(resp.Messages))}
	for _, msg := range resp.Messages {
		m := MessageResponse{
			Text:           msg.Text,
			RequestContact: msg.RequestContact,
			ShowMenu:       msg.ShowMenu,
		}
		for _, c := range msg.Choices {
			m.Choices = append(m.Choices, ChoiceResponse{Label: c.Label, Data: c.Data})
		}
		out.Messages = append(out.Messages, m)
	}
	return out
}
