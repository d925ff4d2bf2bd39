package conversation

import (
	"fmt"
	"time"

	"github.com/2akonsultant/GoodnessGlamour/internal/models"
)

const (
	MsgSessionLost  = "I'm sorry, I'm having trouble with this call. Please try calling again."
	MsgWelcome      = "Hello! Welcome to Goodness Glamour Salon. I'm your AI assistant. How can I help you today?"
	MsgAskName      = "Great! I'd love to help you book an appointment. What's your name?"
	MsgNameAgain    = "I didn't catch your name. Could you please tell me your name?"
	MsgServiceAgain = "Which service interests you? We do haircuts, coloring, treatments, and bridal styling."
	MsgDateAgain    = "What date would you like? You can say tomorrow, or a specific date."
	MsgTimeAgain    = "What time works for you? We're available 9 AM to 8 PM."
	MsgAskAddress   = "Perfect! What's your address for our doorstep service?"
	MsgAddressAgain = "Could you please provide your complete address for our doorstep service?"
	MsgStartOver    = "No problem! Let's start over. What's your name?"
	MsgYesOrNo      = "Please say 'yes' to confirm or 'no' to make changes."
	MsgFarewell     = "Thank you for choosing Goodness Glamour! Have a wonderful day!"
)

func msgAskService(name string) string {
	return fmt.Sprintf("Nice to meet you, %s! Which service would you like? We do haircuts, coloring, treatments, and bridal styling.", name)
}

func msgAskDate(svc models.Service) string {
	return fmt.Sprintf("Perfect! %s is %s. What date works for you?", svc.Name, svc.Price)
}

func msgAskTime(date string) string {
	return fmt.Sprintf("Great! For %s, what time would work? We're available 9 AM to 8 PM.", date)
}

func msgConfirm(d models.BookingDraft) string {
	return fmt.Sprintf("Let me confirm your booking:\nName: %s\nService: %s\nDate: %s\nTime: %s\nAddress: %s\nDoes this look correct?",
		d.CustomerName, d.Service, d.Date, d.Time, d.Address)
}

func msgConfirmed(bookingID string) string {
	return fmt.Sprintf("Perfect! Your booking is confirmed. Booking ID: %s. You'll receive an SMS confirmation shortly. Thank you for choosing Goodness Glamour Salon!", bookingID)
}

// NewBookingID derives a booking reference from the confirmation time.
func NewBookingID(at time.Time) string {
	return "BG" + at.Format("20060102150405")
}
