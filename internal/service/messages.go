package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/2akonsultant/GoodnessGlamour/internal/models"
)

const SalonContactNumber = "9036626642"

var sourceLabels = map[string]string{
	"voice_call": "AI Voice Assistant",
	"sms":        "SMS Assistant",
	"web_chat":   "Web Chat",
}

// CustomerMessage is the confirmation SMS sent to the person who booked.
func CustomerMessage(b models.FinalizedBooking) string {
	var sb strings.Builder
	sb.WriteString("Goodness Glamour Salon - Booking Confirmed!\n\n")
	writeDetails(&sb, b)
	sb.WriteString("\nWe'll be at your doorstep at the scheduled time.\n")
	fmt.Fprintf(&sb, "Contact: %s for any queries.\n\n", SalonContactNumber)
	sb.WriteString("Thank you for choosing Goodness Glamour!")
	return sb.String()
}

// SalonAlert is the SMS sent to the salon for every new booking.
func SalonAlert(b models.FinalizedBooking) string {
	var sb strings.Builder
	sb.WriteString("New Booking Alert!\n\n")
	writeDetails(&sb, b)
	fmt.Fprintf(&sb, "Phone: %s\n", b.Phone)
	if b.DistanceKm != nil {
		fmt.Fprintf(&sb, "Distance: %.1f km\n", *b.DistanceKm)
	}
	source, ok := sourceLabels[b.Source]
	if !ok {
		source = b.Source
	}
	fmt.Fprintf(&sb, "Source: %s\n\n", source)
	fmt.Fprintf(&sb, "Booked at: %s", b.CreatedAt.Format(time.DateTime))
	return sb.String()
}

func writeDetails(sb *strings.Builder, b models.FinalizedBooking) {
	fmt.Fprintf(sb, "Booking ID: %s\n", b.BookingID)
	fmt.Fprintf(sb, "Customer: %s\n", b.CustomerName)
	fmt.Fprintf(sb, "Service: %s\n", b.Service)
	fmt.Fprintf(sb, "Date: %s\n", b.Date)
	fmt.Fprintf(sb, "Time: %s\n", b.Time)
	fmt.Fprintf(sb, "Address: %s\n", b.Address)
}
