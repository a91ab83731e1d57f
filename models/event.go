package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event lifecycle states. Every event starts upcoming and is marked
// completed by an admin once it has run.
const (
	EventStatusUpcoming  = "upcoming"
	EventStatusCompleted = "completed"
)

// Event modes.
const (
	EventModeOnline  = "Online"
	EventModeOffline = "Offline"
)

type Event struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Date        time.Time          `bson:"date" json:"date"`
	Mode        string             `bson:"mode" json:"mode"` // Online, Offline
	Tag         string             `bson:"tag" json:"tag"`
	Status      string             `bson:"status" json:"status"` // upcoming, completed
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// ValidEventStatus reports whether s is a state an admin may set.
func ValidEventStatus(s string) bool {
	return s == EventStatusUpcoming || s == EventStatusCompleted
}

// ValidEventMode reports whether m is a recognised event mode.
func ValidEventMode(m string) bool {
	return m == EventModeOnline || m == EventModeOffline
}
