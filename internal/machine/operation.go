package machine

import (
	"context"
	"fmt"
	"strings"
	"time"

	compute "google.golang.org/api/compute/v1"
)

const (
	// operationPollInterval is how often a pending zone operation is
	// re-checked.
	operationPollInterval = time.Second

	// operationStatusDone is the terminal operation status from the
	// Compute Engine API.
	operationStatusDone = "DONE"
)

// waitForOperation polls the named zone operation until it reaches
// DONE, then surfaces any error the operation recorded. Polling stops
// when ctx is cancelled.
func (m *Manager) waitForOperation(ctx context.Context, operation string) error {
	ticker := time.NewTicker(operationPollInterval)
	defer ticker.Stop()

	for {
		op, err := m.compute.ZoneOperation(ctx, m.target.Project, m.target.Zone, operation)
		if err != nil {
			return fmt.Errorf("failed to get operation %s: %w", operation, err)
		}

		m.logger.WithField("status", op.Status).Debug("operation status")

		if op.Status == operationStatusDone {
			if op.Error != nil {
				return fmt.Errorf("operation %s failed: %s", operation, operationErrorString(op.Error))
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for operation %s cancelled: %w", operation, ctx.Err())
		case <-ticker.C:
		}
	}
}

// operationErrorString flattens an operation's error list into a
// single message.
func operationErrorString(opErr *compute.OperationError) string {
	if len(opErr.Errors) == 0 {
		return "unknown error"
	}

	msgs := make([]string, 0, len(opErr.Errors))
	for _, e := range opErr.Errors {
		if e.Code != "" {
			msgs = append(msgs, fmt.Sprintf("%s: %s", e.Code, e.Message))
		} else {
			msgs = append(msgs, e.Message)
		}
	}
	return strings.Join(msgs, "; ")
}
