package conversation

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBot/internal/domain"
)

// Кнопки главного меню
const (
	MenuBook        = "📅 Book an appointment"
	MenuServices    = "ℹ️ Services & prices"
	MenuContact     = "📞 Contact"
	MenuProfile     = "⚙️ My profile"
	MenuAppointment = "🗓 My appointment"
	MenuCancel      = "🔙 Cancel"
)

// Команды чата
const (
	CommandStart  = "/start"
	CommandBook   = "/book"
	CommandCancel = "/cancel"
)

// Данные кнопок
const (
	CallbackService           = "service"
	CallbackDate              = "date"
	CallbackTime              = "time"
	CallbackConfirm           = "confirm"
	CallbackCancel            = "cancel"
	CallbackEditName          = "edit:name"
	CallbackEditPhone         = "edit:phone"
	CallbackCancelAppointment = "appointment:cancel"
)

const (
	msgWelcome            = "Welcome to %s! 👋"
	msgCancelled          = "Cancelled."
	msgAskPhone           = "To book an appointment please confirm your phone number. Share your contact or type the number."
	msgInvalidPhone       = "⚠️ Please enter a valid phone number, for example +37491234567."
	msgForeignContact     = "⚠️ Please share your own phone number."
	msgPhoneSaved         = "✅ Thank you, %s. Your number is saved."
	msgChooseService      = "Choose a service:"
	msgChooseDate         = "Which day would you like to book?"
	msgChooseTime         = "Choose a time (%s):"
	msgNoSlotsDay         = "There are no free times %s. Please choose another day."
	msgNearestSlot        = "The nearest free time is %s at %s."
	msgNoSlotsHorizon     = "Sorry, there are no free times in the next %d days."
	msgUnknownChoice      = "Please use the buttons below."
	msgStaleChoice        = "This button has expired. Please start again from the menu."
	msgDateUnavailable    = "That day can't be booked. Please choose one of the days below."
	msgTimeUnavailable    = "That time is no longer free. Please choose another time (%s):"
	msgConfirm            = "Please confirm your booking:\n👤 %s\n✂️ %s\n📅 %s\n⏰ %s"
	msgBooked             = "✅ Booked!\n\n👤 %s\n✂️ %s\n📅 %s\n⏰ %s"
	msgSlotTaken          = "Sorry, %s %s was just taken by someone else."
	msgAlreadyBooked      = "You already have an upcoming appointment:"
	msgNoProfile          = "You are not registered yet. Tap \"" + MenuBook + "\" to register with your phone number."
	msgProfile            = "👤 Name: %s\n📱 Phone: %s"
	msgAskNewName         = "Please type your new name."
	msgInvalidName        = "⚠️ The name must be 1 to %d characters long."
	msgNameChanged        = "✅ Your name is now %s."
	msgAskNewPhone        = "Please share or type your new phone number."
	msgPhoneChanged       = "✅ Your phone number is now %s."
	msgNoAppointment      = "You have no upcoming appointments."
	msgAppointment        = "🗓 Your appointment:\n✂️ %s\n📅 %s\n⏰ %s - %s"
	msgAppointmentRemoved = "Your appointment on %s at %s is cancelled."
	msgServices           = "📋 Services:\n✂️ Haircut (60 min): %s\n🧔 Beard (30 min): %s\n🕒 %02d:00 - %02d:00"
	msgContact            = "📞 Contact: %s\n📍 %s"
	msgGreeting           = "Hello! How can I help you?"
	msgConfirmWord        = "Great! 😊 Tap \"" + MenuBook + "\" to see free times and book."
	msgAssistantFallback  = "Sorry, I can only answer questions about %s. A haircut costs %s and a beard trim costs %s. 😊 Use the menu to book."
	msgSomethingWrong     = "Something went wrong. Please try again later."
)

const (
	labelToday    = "Today"
	labelTomorrow = "Tomorrow"
	labelConfirm  = "✅ Confirm"
	labelCancel   = "❌ Cancel"
	labelEditName = "✏️ Change name"
	labelEditPhn  = "🔄 Change phone number"
	labelCancelAp = "❌ Cancel appointment"

	dayLabelFormat = "Mon, 02 Jan"
	longDateFormat = "Monday, 02 January 2006"
)

var greetingWords = map[string]struct{}{
	"hi":      {},
	"hello":   {},
	"barev":   {},
	"բարև":    {},
	"ողջույն": {},
}

var confirmationWords = map[string]struct{}{
	"ok":       {},
	"yes":      {},
	"ayo":      {},
	"այո":      {},
	"ha":       {},
	"հա":       {},
	"uzum em":  {},
	"ուզում եմ": {},
}

// isGreeting ищет приветствие среди слов сообщения
func isGreeting(t string) bool {
	for _, word := range strings.FieldsFunc(strings.ToLower(t), isSeparator) {
		if _, ok := greetingWords[word]; ok {
			return true
		}
	}
	return false
}

// isConfirmation сообщение целиком совпадает со словом согласия
func isConfirmation(t string) bool {
	_, ok := confirmationWords[strings.Join(strings.FieldsFunc(strings.ToLower(t), isSeparator), " ")]
	return ok
}

func isSeparator(r rune) bool {
	return strings.ContainsRune(" \t\n,.!?;:", r)
}

func serviceLabel(s domain.ServiceKind) string {
	switch s {
	case domain.ServiceHaircut:
		return "✂️ Haircut (60 min)"
	case domain.ServiceBeard:
		return "🧔 Beard (30 min)"
	default:
		return string(s)
	}
}

// dayLabel подпись дня относительно сегодняшнего
func dayLabel(day, today time.Time) string {
	switch {
	case sameDay(day, today):
		return labelToday
	case sameDay(day, today.AddDate(0, 0, 1)):
		return labelTomorrow
	default:
		return day.Format(dayLabelFormat)
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func serviceChoices() []Choice {
	choices := make([]Choice, 0, len(domain.Services))
	for _, s := range domain.Services {
		choices = append(choices, Choice{Label: serviceLabel(s), Data: CallbackService + ":" + string(s)})
	}
	return append(choices, cancelChoice())
}

func dateChoices(days []time.Time, today time.Time) []Choice {
	choices := make([]Choice, 0, len(days)+1)
	for _, d := range days {
		choices = append(choices, Choice{Label: dayLabel(d, today), Data: CallbackDate + ":" + d.Format(domain.DateFormat)})
	}
	return append(choices, cancelChoice())
}

func timeChoices(slots []domain.TimeSlot) []Choice {
	choices := make([]Choice, 0, len(slots)+1)
	for _, s := range slots {
		choices = append(choices, Choice{Label: s.Label(), Data: CallbackTime + ":" + s.Label()})
	}
	return append(choices, cancelChoice())
}

func confirmChoices() []Choice {
	return []Choice{
		{Label: labelConfirm, Data: CallbackConfirm},
		cancelChoice(),
	}
}

func profileChoices() []Choice {
	return []Choice{
		{Label: labelEditName, Data: CallbackEditName},
		{Label: labelEditPhn, Data: CallbackEditPhone},
	}
}

func appointmentChoices() []Choice {
	return []Choice{{Label: labelCancelAp, Data: CallbackCancelAppointment}}
}

func cancelChoice() Choice {
	return Choice{Label: labelCancel, Data: CallbackCancel}
}

func formatLongDate(t time.Time) string {
	return t.Format(longDateFormat)
}

func slotSummary(slots []domain.TimeSlot) string {
	if len(slots) == 0 {
		return "none"
	}
	labels := make([]string, len(slots))
	for i, s := range slots {
		labels[i] = s.Label()
	}
	return strings.Join(labels, ", ")
}

// inlineDay день для середины фразы: "today", "tomorrow" или "on Mon, 16 Oct"
func inlineDay(day, today time.Time) string {
	label := dayLabel(day, today)
	if label == labelToday || label == labelTomorrow {
		return strings.ToLower(label)
	}
	return "on " + label
}

func nearestLabel(n domain.NearestSlot, today time.Time) string {
	return fmt.Sprintf(msgNearestSlot, inlineDay(n.Slot.Start, today), n.Slot.Label())
}
