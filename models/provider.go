package models

import (
	"strings"
	"time"
)

// ServiceOffering is a bookable service published by a provider.
type ServiceOffering struct {
	ID              string  `bson:"id" json:"id"`
	Name            string  `bson:"name" json:"name"`
	DurationMinutes int     `bson:"durationMinutes" json:"durationMinutes"`
	Price           float64 `bson:"price" json:"price"`
}

// AvailabilityException overrides the weekly template for one specific date.
// A fully blocked date yields no availability; otherwise the listed intervals
// replace the template entirely for that date.
type AvailabilityException struct {
	Date      string         `bson:"date" json:"date"` // "YYYY-MM-DD"
	Blocked   bool           `bson:"blocked" json:"blocked"`
	Intervals []OpenInterval `bson:"intervals,omitempty" json:"intervals,omitempty"`
	Reason    string         `bson:"reason,omitempty" json:"reason,omitempty"`
}

// BookingPolicy holds per-provider booking behaviour switches.
type BookingPolicy struct {
	// AutoConfirm skips the pending stage: new bookings land as confirmed.
	AutoConfirm bool `bson:"autoConfirm" json:"autoConfirm"`
}

// Provider represents an account offering bookable services. The weekly
// Template maps a lowercase weekday name ("monday") to that day's open
// intervals; a missing weekday means the provider is unavailable that day.
type Provider struct {
	ID         string                    `bson:"id" json:"id"`
	Name       string                    `bson:"name" json:"name"`
	Services   []ServiceOffering         `bson:"services" json:"services"`
	Template   map[string][]OpenInterval `bson:"template" json:"template"`
	Exceptions []AvailabilityException   `bson:"exceptions,omitempty" json:"exceptions,omitempty"`
	Policy     BookingPolicy             `bson:"policy" json:"policy"`
	CreatedAt  time.Time                 `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time                 `bson:"updatedAt" json:"updatedAt"`
}

// WeekdayKey converts a time.Weekday into the template map key.
func WeekdayKey(d time.Weekday) string {
	return strings.ToLower(d.String())
}

// ServiceByID returns the offering with the given id, or nil.
func (p *Provider) ServiceByID(serviceID string) *ServiceOffering {
	for i := range p.Services {
		if p.Services[i].ID == serviceID {
			return &p.Services[i]
		}
	}
	return nil
}

// ExceptionFor returns the availability exception for a date, or nil.
func (p *Provider) ExceptionFor(date string) *AvailabilityException {
	for i := range p.Exceptions {
		if p.Exceptions[i].Date == date {
			return &p.Exceptions[i]
		}
	}
	return nil
}
