package machine

import (
	"context"

	"github.com/sirupsen/logrus"
	compute "google.golang.org/api/compute/v1"
)

// DeleteOptions controls delete behavior.
type DeleteOptions struct {
	// Wait blocks until the delete operation reaches DONE.
	Wait bool
}

// Delete deletes the named instance. The instance is keyed by
// project/zone/name alone; the config file is not consulted.
//
// Provider errors are returned as-is; there are no retries.
func (m *Manager) Delete(ctx context.Context, name string, opts DeleteOptions) (*compute.Operation, error) {
	logger := m.logger.WithFields(logrus.Fields{
		"instance": name,
		"project":  m.target.Project,
		"zone":     m.target.Zone,
	})

	logger.Info("issuing delete request")

	op, err := m.compute.DeleteInstance(ctx, m.target.Project, m.target.Zone, name)
	if err != nil {
		return nil, err
	}

	if !opts.Wait {
		return op, nil
	}

	logger.WithField("operation", op.Name).Info("waiting for delete operation")
	if err := m.waitForOperation(ctx, op.Name); err != nil {
		return nil, err
	}

	logger.Info("instance deleted")
	return op, nil
}
