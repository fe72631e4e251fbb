package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"servana/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ActiveByProviderDate returns pending and confirmed bookings for the provider
// on the given date, sorted by start ascending.
func (repo *MongoBookingRepo) ActiveByProviderDate(ctx context.Context, providerID, date string) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"date":        date,
		"status":      bson.M{"$in": []models.BookingStatus{models.StatusPending, models.StatusConfirmed}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})

	cursor, err := repo.coll.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error querying active bookings for provider %s on %s: %w", providerID, date, err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding active bookings: %w", err)
	}
	return bookings, nil
}

// List returns bookings matching the filter, sorted by date then start.
func (repo *MongoBookingRepo) List(ctx context.Context, f ListFilter) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if f.ProviderID != "" {
		filter["provider_id"] = f.ProviderID
	}
	if f.ClientID != "" {
		filter["client_id"] = f.ClientID
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	dateRange := bson.M{}
	if f.FromDate != "" {
		dateRange["$gte"] = f.FromDate
	}
	if f.ToDate != "" {
		dateRange["$lte"] = f.ToDate
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "start", Value: 1}})
	cursor, err := repo.coll.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// ConfirmedEndedBefore returns confirmed bookings whose end has passed.
// Dates sort lexicographically in "YYYY-MM-DD" form, so a string comparison
// against today's date is a correct range predicate.
func (repo *MongoBookingRepo) ConfirmedEndedBefore(ctx context.Context, now time.Time) ([]models.Booking, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	today := now.Format(models.DateLayout)
	minuteOfDay := now.Hour()*60 + now.Minute()

	filter := bson.M{
		"status": models.StatusConfirmed,
		"$or": []bson.M{
			{"date": bson.M{"$lt": today}},
			{"date": today, "end": bson.M{"$lte": minuteOfDay}},
		},
	}

	cursor, err := repo.coll.Find(ctxWithTimeout, filter)
	if err != nil {
		return nil, fmt.Errorf("error querying elapsed bookings: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var bookings []models.Booking
	if err := cursor.All(ctxWithTimeout, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding elapsed bookings: %w", err)
	}
	return bookings, nil
}
