package models

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventBirthdayParty EventType = "birthday_party"
	EventCorporate     EventType = "corporate_event"
	EventSchool        EventType = "school_event"
	EventFestival      EventType = "festival"
	EventCharity       EventType = "charity_event"
	EventPhotoShoot    EventType = "photo_shoot"
	EventOther         EventType = "other"
)

var EventTypes = []EventType{
	EventBirthdayParty, EventCorporate, EventSchool, EventFestival, EventCharity, EventPhotoShoot, EventOther,
}

func (e EventType) Valid() bool {
	for _, v := range EventTypes {
		if e == v {
			return true
		}
	}
	return false
}

// ContactMessage is an inquiry addressed to a profile. Only admins read or delete it.
type ContactMessage struct {
	ID          uuid.UUID   `json:"id"`
	ProfileID   *uuid.UUID  `json:"profile_id,omitempty"`
	SenderName  string      `json:"sender_name"`
	SenderEmail string      `json:"sender_email"`
	SenderPhone string      `json:"sender_phone,omitempty"`
	City        string      `json:"city,omitempty"`
	State       string      `json:"state,omitempty"`
	ZipCode     string      `json:"zip_code,omitempty"`
	EventTypes  []EventType `json:"event_types,omitempty"`
	Message     string      `json:"message"`
	IsRead      bool        `json:"is_read"`
	CreatedAt   time.Time   `json:"created_at"`
}
