// Package machine provides high-level instance management operations.
package machine

import (
	"github.com/sirupsen/logrus"

	"github.com/ncampost/compute-manager/internal/envdefaults"
	"github.com/ncampost/compute-manager/internal/gce"
)

// Manager issues instance operations against a resolved project/zone
// target.
type Manager struct {
	compute computeClient
	logger  *logrus.Entry
	target  envdefaults.Target
}

// NewManager creates a Manager backed by a real Compute Engine client.
func NewManager(client *gce.Client, logger *logrus.Entry, target envdefaults.Target) *Manager {
	return &Manager{
		compute: client,
		logger:  logger,
		target:  target,
	}
}

// newManagerWithDeps creates a Manager with an injected compute client.
// This allows for testing by accepting the interface instead of the
// concrete type.
func newManagerWithDeps(client computeClient, logger *logrus.Entry, target envdefaults.Target) *Manager {
	return &Manager{
		compute: client,
		logger:  logger,
		target:  target,
	}
}
