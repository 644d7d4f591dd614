package services

import (
	"context"
	"fmt"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

// NotificationResult reports the outcome of one asynchronous send
type NotificationResult struct {
	To      string
	Subject string
	Err     error
}

// AsyncNotifier sends email on a bounded worker pool
type AsyncNotifier struct {
	pool   *ants.Pool
	email  EmailService
	logger *zap.Logger
}

func NewAsyncNotifier(email EmailService, workers int, logger *zap.Logger) (*AsyncNotifier, error) {
	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification pool: %w", err)
	}
	return &AsyncNotifier{pool: pool, email: email, logger: logger}, nil
}

// Dispatch queues the message and returns a channel that receives exactly one result.
// The send is detached from ctx cancellation so a finished request does not abort it.
func (n *AsyncNotifier) Dispatch(ctx context.Context, msg EmailMessage) <-chan NotificationResult {
	results := make(chan NotificationResult, 1)
	sendCtx := context.WithoutCancel(ctx)

	err := n.pool.Submit(func() {
		defer close(results)

		err := n.email.Send(sendCtx, msg)
		if err != nil {
			n.logger.Error("failed to send notification",
				zap.String("to", msg.To),
				zap.String("subject", msg.Subject),
				zap.Error(err))
		}
		results <- NotificationResult{To: msg.To, Subject: msg.Subject, Err: err}
	})
	if err != nil {
		n.logger.Error("failed to queue notification", zap.String("to", msg.To), zap.Error(err))
		results <- NotificationResult{To: msg.To, Subject: msg.Subject, Err: fmt.Errorf("failed to queue notification: %w", err)}
		close(results)
	}

	return results
}

// Close releases the pool, waiting up to timeout for running sends to finish
func (n *AsyncNotifier) Close(timeout time.Duration) error {
	return n.pool.ReleaseTimeout(timeout)
}
