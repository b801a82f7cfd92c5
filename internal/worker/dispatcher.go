// Package worker runs the asynchronous email delivery: the orchestrator
// enqueues jobs into a Redis list and a small worker pool drains it with
// BRPOP. Delivery failures are logged, never surfaced to the client.
package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// QueueEmail is the Redis list holding pending email jobs.
const QueueEmail = "jobs:email"

// EmailJobPayload is the job envelope pushed to QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Dispatcher enqueues email jobs. It satisfies the account orchestrator's
// Notifier port.
type Dispatcher struct {
	rdb *redis.Client
}

// NewDispatcher builds the dispatcher.
func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// Enqueue pushes one email job and returns once Redis accepted it.
func (d *Dispatcher) Enqueue(ctx context.Context, to, subject, htmlBody string) error {
	payload, err := json.Marshal(EmailJobPayload{ToEmail: to, Subject: subject, Body: htmlBody})
	if err != nil {
		return fmt.Errorf("dispatcher: marshal job: %w", err)
	}
	if err := d.rdb.LPush(ctx, QueueEmail, payload).Err(); err != nil {
		return fmt.Errorf("dispatcher: enqueue: %w", err)
	}
	return nil
}
