package models

import "time"

type Step string

const (
	StepGreeting        Step = "greeting"
	StepGetName         Step = "get_name"
	StepGetService      Step = "get_service"
	StepGetDate         Step = "get_date"
	StepGetTime         Step = "get_time"
	StepGetAddress      Step = "get_address"
	StepConfirmBooking  Step = "confirm_booking"
	StepBookingComplete Step = "booking_complete"
)

// Steps lists every conversation step in flow order.
var Steps = []Step{
	StepGreeting,
	StepGetName,
	StepGetService,
	StepGetDate,
	StepGetTime,
	StepGetAddress,
	StepConfirmBooking,
	StepBookingComplete,
}

func (s Step) Valid() bool {
	for _, step := range Steps {
		if s == step {
			return true
		}
	}
	return false
}

type Channel string

const (
	ChannelVoice Channel = "voice"
	ChannelSMS   Channel = "sms"
	ChannelChat  Channel = "chat"
)

// Source is the tag persisted with a finalized booking.
func (c Channel) Source() string {
	switch c {
	case ChannelVoice:
		return "voice_call"
	case ChannelSMS:
		return "sms"
	case ChannelChat:
		return "web_chat"
	default:
		return "unknown"
	}
}

const (
	SpeakerCustomer  = "customer"
	SpeakerAssistant = "assistant"
)

type HistoryEntry struct {
	Speaker   string    `json:"speaker"`
	Utterance string    `json:"utterance"`
	At        time.Time `json:"at"`
}

type BookingDraft struct {
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
	Service      string `json:"service"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Address      string `json:"address"`
	Notes        string `json:"notes,omitempty"`
}

// Filled reports whether every required slot holds a value.
func (d BookingDraft) Filled() bool {
	return d.CustomerName != "" && d.Service != "" && d.Date != "" && d.Time != "" && d.Address != ""
}

type Session struct {
	ID           string         `json:"session_id"`
	Phone        string         `json:"phone"`
	Channel      Channel        `json:"channel"`
	Step         Step           `json:"current_step"`
	CustomerName string         `json:"customer_name,omitempty"`
	Booking      BookingDraft   `json:"booking"`
	BookingID    string         `json:"booking_id,omitempty"`
	History      []HistoryEntry `json:"history"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Clone returns a copy that shares no mutable state with s.
func (s Session) Clone() Session {
	out := s
	if s.History != nil {
		out.History = make([]HistoryEntry, len(s.History))
		copy(out.History, s.History)
	}
	return out
}

func (s *Session) Record(speaker, utterance string, at time.Time) {
	s.History = append(s.History, HistoryEntry{Speaker: speaker, Utterance: utterance, At: at})
}

// Reset wipes the collected slots and sends the conversation back to the name step.
func (s *Session) Reset() {
	s.CustomerName = ""
	s.Booking = BookingDraft{Phone: s.Phone}
	s.Step = StepGetName
}

const BookingStatusConfirmed = "confirmed"

type FinalizedBooking struct {
	BookingID    string    `json:"booking_id"`
	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone"`
	Service      string    `json:"service"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	Address      string    `json:"address"`
	Notes        string    `json:"notes,omitempty"`
	Status       string    `json:"status"`
	Source       string    `json:"source"`
	CreatedAt    time.Time `json:"created_at"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	DistanceKm   *float64  `json:"distance_km,omitempty"`
}

type Service struct {
	Key      string `json:"key"`
	Category string `json:"category"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Duration string `json:"duration"`
}
