package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"sokoni/config"
	recordsRepo "sokoni/database/repository/records"
	"sokoni/models"
	"sokoni/services/tasks"

	"github.com/hibiken/asynq"
)

// InitEventWorker runs the async lifecycle-event worker in background. It is
// the only consumer of the booking/order event queue: it turns events into
// notification rows for the affected parties and, on booking completion,
// writes the provider's earnings ledger entry.
func InitEventWorker(records recordsRepo.RecordsRepository) {
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
	mux.HandleFunc(tasks.TypeBookingEvent, handleLifecycleEvent(records))
	mux.HandleFunc(tasks.TypeOrderEvent, handleLifecycleEvent(records))

	go func() {
		log.Println("[EventWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[EventWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[EventWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleLifecycleEvent(records recordsRepo.RecordsRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var ev tasks.LifecycleEvent
		if err := json.Unmarshal(task.Payload(), &ev); err != nil {
			log.Printf("[EventWorker] invalid payload: %v", err)
			return err
		}

		message := eventMessage(ev)
		data := map[string]any{
			"entity":    ev.Entity,
			"entity_id": ev.EntityID,
			"code":      ev.Code,
			"event":     ev.Event,
		}

		// One notification row for the customer and one per counterparty.
		recipients := append([]string{ev.CustomerID}, ev.PartyIDs...)
		for _, userID := range recipients {
			if userID == "" || userID == ev.ActorID {
				continue
			}
			n := models.Notification{
				UserID:  userID,
				Type:    ev.Event,
				Message: message,
				Data:    data,
			}
			if _, err := records.CreateNotification(ctx, n); err != nil {
				return fmt.Errorf("failed to record notification for %s: %w", userID, err)
			}
		}

		if ev.Event == tasks.EventBookingCompleted && ev.Amounts != nil {
			e := models.Earning{
				ProviderID:       ev.Amounts.ProviderID,
				BookingID:        ev.EntityID,
				BookingCode:      ev.Code,
				GrossAmount:      ev.Amounts.Gross,
				CommissionAmount: ev.Amounts.Commission,
				NetAmount:        ev.Amounts.Net,
			}
			if _, err := records.CreateEarning(ctx, e); err != nil {
				return fmt.Errorf("failed to record earning for booking %s: %w", ev.EntityID, err)
			}
		}

		return nil
	}
}

func eventMessage(ev tasks.LifecycleEvent) string {
	switch ev.Event {
	case tasks.EventBookingCreated:
		return fmt.Sprintf("New booking request %s", ev.Code)
	case tasks.EventBookingConfirmed:
		return fmt.Sprintf("Booking %s has been confirmed", ev.Code)
	case tasks.EventBookingEnroute:
		return fmt.Sprintf("Your provider is on the way for booking %s", ev.Code)
	case tasks.EventBookingStarted:
		return fmt.Sprintf("Work on booking %s has started", ev.Code)
	case tasks.EventBookingCompleted:
		return fmt.Sprintf("Booking %s has been completed", ev.Code)
	case tasks.EventBookingCancelled:
		return fmt.Sprintf("Booking %s has been cancelled", ev.Code)
	case tasks.EventOrderCreated:
		return fmt.Sprintf("Order %s has been placed", ev.Code)
	case tasks.EventOrderShipped:
		return fmt.Sprintf("Order %s has shipped", ev.Code)
	case tasks.EventOrderDelivered:
		return fmt.Sprintf("Order %s has been delivered", ev.Code)
	case tasks.EventOrderCancelled:
		return fmt.Sprintf("Order %s has been cancelled", ev.Code)
	default:
		return fmt.Sprintf("Update on %s %s", ev.Entity, ev.Code)
	}
}
