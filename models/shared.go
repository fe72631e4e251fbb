package models

// Role identifies what kind of account an actor holds.
type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

// Actor is the authenticated identity behind a scheduling call. It is always
// passed explicitly; handlers and services keep no ambient session state.
type Actor struct {
	ID   string `json:"id"`
	Role Role   `json:"role"`
}

// DateLayout is the wire and storage format for booking dates.
const DateLayout = "2006-01-02"

// MinutesPerDay bounds every within-day time value.
const MinutesPerDay = 24 * 60

// OpenInterval is a bookable time block within a single day, expressed in
// minutes from midnight. End is exclusive.
type OpenInterval struct {
	Start int `bson:"start" json:"start"`
	End   int `bson:"end" json:"end"`
}

// Contains reports whether the candidate block lies fully inside the interval.
func (iv OpenInterval) Contains(start, end int) bool {
	return start >= iv.Start && end <= iv.End
}

// Overlaps reports whether two blocks share any time. Touching endpoints
// (one ends exactly when the other starts) do not overlap.
func (iv OpenInterval) Overlaps(start, end int) bool {
	return start < iv.End && iv.Start < end
}
