package notification

import (
	"context"

	"servana/models"
	"servana/utils"

	"go.uber.org/zap"
)

// LogNotificationService records booking events in the application log.
// It is the default sink when no external push/email system is wired in.
type LogNotificationService struct{}

func (s *LogNotificationService) NotifyBookingEvent(_ context.Context, event models.BookingEvent) error {
	utils.GetLogger().Info("booking event",
		zap.String("type", event.Type),
		zap.String("bookingID", event.BookingID),
		zap.String("providerID", event.ProviderID),
		zap.String("clientID", event.ClientID),
		zap.String("oldStatus", string(event.OldStatus)),
		zap.String("newStatus", string(event.NewStatus)),
		zap.String("date", event.Interval.Date),
		zap.Int("start", event.Interval.Start),
		zap.Int("end", event.Interval.End),
	)
	return nil
}
