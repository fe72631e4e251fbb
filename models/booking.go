package models

import "time"

// BookingStatus tracks where a booking sits in its lifecycle.
type BookingStatus string

const (
	StatusPending             BookingStatus = "pending"
	StatusConfirmed           BookingStatus = "confirmed"
	StatusCompleted           BookingStatus = "completed"
	StatusCancelledByClient   BookingStatus = "cancelled_by_client"
	StatusCancelledByProvider BookingStatus = "cancelled_by_provider"
	StatusDeclined            BookingStatus = "declined"
)

// IsTerminal reports whether the status permits no further transitions.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusCancelledByClient, StatusCancelledByProvider, StatusDeclined:
		return true
	}
	return false
}

// IsActive reports whether the booking still occupies its slot.
// Only active bookings count in conflict checks.
func (s BookingStatus) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ScheduledInterval is a booking's slot on a concrete date. Start and End are
// minutes from midnight; End is exclusive and never crosses midnight.
type ScheduledInterval struct {
	Date  string `bson:"date" json:"date"` // "YYYY-MM-DD"
	Start int    `bson:"start" json:"start"`
	End   int    `bson:"end" json:"end"`
}

// StartTime resolves the interval's start to an absolute timestamp in loc.
func (si ScheduledInterval) StartTime(loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, si.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(si.Start) * time.Minute), nil
}

// EndTime resolves the interval's end to an absolute timestamp in loc.
func (si ScheduledInterval) EndTime(loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DateLayout, si.Date, loc)
	if err != nil {
		return time.Time{}, err
	}
	return day.Add(time.Duration(si.End) * time.Minute), nil
}

// Booking is a client's reservation of a provider's service slot. Duration is
// copied from the service offering at creation time, so later service edits do
// not retroactively alter existing bookings. Bookings are never deleted;
// cancelled and completed records are retained for history.
type Booking struct {
	ID               string              `bson:"id" json:"id"`
	ProviderID       string              `bson:"provider_id" json:"providerId"`
	ClientID         string              `bson:"client_id" json:"clientId"`
	ServiceID        string              `bson:"service_id" json:"serviceId"`
	Date             string              `bson:"date" json:"date"`
	Start            int                 `bson:"start" json:"start"`
	End              int                 `bson:"end" json:"end"`
	DurationMinutes  int                 `bson:"durationMinutes" json:"durationMinutes"`
	Status           BookingStatus       `bson:"status" json:"status"`
	CancelReason     string              `bson:"cancelReason,omitempty" json:"cancelReason,omitempty"`
	History          []ScheduledInterval `bson:"history,omitempty" json:"history,omitempty"`
	CreatedAt        time.Time           `bson:"created_at" json:"createdAt"`
	LastTransitionAt time.Time           `bson:"lastTransitionAt" json:"lastTransitionAt"`
}

// Interval returns the booking's current scheduled interval.
func (b *Booking) Interval() ScheduledInterval {
	return ScheduledInterval{Date: b.Date, Start: b.Start, End: b.End}
}
