package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"servana/config"
	"servana/models"
	"servana/services/notification"
	"servana/services/scheduling"

	"github.com/hibiken/asynq"
)

// TypeCompletionSweep is the periodic task that completes elapsed bookings.
const TypeCompletionSweep = "booking:sweep"

// InitWorker runs the async worker and the periodic scheduler in background.
// The worker consumes booking domain events off the queue and hands them to
// the notification adapter; the scheduler enqueues the completion sweep.
func InitWorker(notifSvc notification.NotificationService, schedSvc scheduling.SchedulingService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(models.EventBookingCreated, handleBookingEvent(notifSvc))
	mux.HandleFunc(models.EventBookingStatusChanged, handleBookingEvent(notifSvc))
	mux.HandleFunc(models.EventBookingRescheduled, handleBookingEvent(notifSvc))
	mux.HandleFunc(TypeCompletionSweep, handleCompletionSweep(schedSvc))

	// Start async worker with retry logic
	go func() {
		log.Println("[Worker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()

	// Schedule the periodic completion sweep.
	go func() {
		scheduler := asynq.NewScheduler(redisOpts, nil)
		task := asynq.NewTask(TypeCompletionSweep, nil)
		if _, err := scheduler.Register(config.AppConfig.SweepCronSpec, task); err != nil {
			log.Printf("[Worker] Failed to register completion sweep: %v", err)
			return
		}
		if err := scheduler.Run(); err != nil {
			log.Printf("[Worker] Scheduler stopped: %v", err)
		}
	}()
}

func handleBookingEvent(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var event models.BookingEvent
		if err := json.Unmarshal(task.Payload(), &event); err != nil {
			log.Printf("[EventHandler] Invalid payload for %s: %v", task.Type(), err)
			return err
		}

		if err := notifSvc.NotifyBookingEvent(ctx, event); err != nil {
			log.Printf("[EventHandler] Failed to notify for booking %s: %v", event.BookingID, err)
			return err
		}
		return nil
	}
}

func handleCompletionSweep(schedSvc scheduling.SchedulingService) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		count, err := schedSvc.CompleteElapsed(ctx, time.Now())
		if err != nil {
			log.Printf("[CompletionSweep] Sweep failed: %v", err)
			return err
		}
		if count > 0 {
			log.Printf("[CompletionSweep] Completed %d elapsed bookings", count)
		}
		return nil
	}
}
