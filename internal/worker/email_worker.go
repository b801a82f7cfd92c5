package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Sender delivers one email. Implemented by mail.Mailer.
type Sender interface {
	Send(to, subject, htmlBody string) error
}

// StartPool launches numWorkers goroutines consuming QueueEmail. Each
// goroutine blocks on BRPOP, so the pool is idle at zero CPU.
func StartPool(ctx context.Context, rdb *redis.Client, sender Sender, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go run(ctx, rdb, sender, i)
	}
	log.Info().Int("workers", numWorkers).Msg("email worker pool started")
}

func run(ctx context.Context, rdb *redis.Client, sender Sender, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Int("worker", id).Msg("email worker shutting down")
			return
		default:
			// Blocking pop: waits up to 5s, then loops to re-check ctx.
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueEmail).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			process(sender, []byte(result[1]))
		}
	}
}

func process(sender Sender, raw []byte) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email worker: empty to_email, skipping")
		return
	}
	if err := sender.Send(payload.ToEmail, payload.Subject, payload.Body); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email worker: send failed")
		return
	}
	log.Info().Str("to", payload.ToEmail).Str("subject", payload.Subject).Msg("email worker: sent")
}
