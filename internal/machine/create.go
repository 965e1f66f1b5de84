package machine

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	compute "google.golang.org/api/compute/v1"

	"github.com/ncampost/compute-manager/internal/config"
)

// Scopes granted to the instance's default service account, allowing
// it to write to cloud storage and logging.
var defaultScopes = []string{
	"https://www.googleapis.com/auth/devstorage.read_write",
	"https://www.googleapis.com/auth/logging.write",
}

// CreateOptions controls create behavior.
type CreateOptions struct {
	// Wait blocks until the insert operation reaches DONE.
	Wait bool
}

// Create creates an instance from a loaded configuration.
//
// This orchestrates the creation process:
//  1. Resolve the boot image from the configured image family
//  2. Build the instance request from the config
//  3. Issue exactly one instances.insert call
//  4. Optionally wait for the zone operation to complete
//
// Provider errors are returned as-is; there are no retries.
func (m *Manager) Create(ctx context.Context, cfg *config.InstanceConfig, opts CreateOptions) (*compute.Operation, error) {
	logger := m.logger.WithFields(logrus.Fields{
		"instance": cfg.Name,
		"project":  m.target.Project,
		"zone":     m.target.Zone,
	})

	logger.WithFields(logrus.Fields{
		"image_project": cfg.InstanceProject,
		"image_family":  cfg.InstanceFamily,
	}).Info("resolving boot image from family")

	image, err := m.compute.ImageFromFamily(ctx, cfg.InstanceProject, cfg.InstanceFamily)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve image family %s/%s: %w", cfg.InstanceProject, cfg.InstanceFamily, err)
	}

	instance := buildInstance(cfg, m.target.Zone, image.SelfLink)

	logger.WithField("machine_type", cfg.MachineType).Info("issuing create request")

	op, err := m.compute.InsertInstance(ctx, m.target.Project, m.target.Zone, instance)
	if err != nil {
		return nil, err
	}

	if !opts.Wait {
		return op, nil
	}

	logger.WithField("operation", op.Name).Info("waiting for create operation")
	if err := m.waitForOperation(ctx, op.Name); err != nil {
		return nil, err
	}

	logger.Info("instance created")
	return op, nil
}

// buildInstance translates an InstanceConfig into an instances.insert
// request body.
func buildInstance(cfg *config.InstanceConfig, zone, sourceImage string) *compute.Instance {
	instance := &compute.Instance{
		Name:        cfg.Name,
		MachineType: fmt.Sprintf("zones/%s/machineTypes/%s", zone, cfg.MachineType),
		Disks: []*compute.AttachedDisk{
			{
				Boot:       true,
				AutoDelete: true,
				InitializeParams: &compute.AttachedDiskInitializeParams{
					SourceImage: sourceImage,
					DiskSizeGb:  int64(cfg.DiskSizeGB),
				},
			},
		},
		// NIC with NAT so the instance can reach the public internet.
		NetworkInterfaces: []*compute.NetworkInterface{
			{
				Network: fmt.Sprintf("global/networks/%s", cfg.Network),
				AccessConfigs: []*compute.AccessConfig{
					{
						Type: "ONE_TO_ONE_NAT",
						Name: "External NAT",
					},
				},
			},
		},
		ServiceAccounts: []*compute.ServiceAccount{
			{
				Email:  "default",
				Scopes: defaultScopes,
			},
		},
	}

	if cfg.Preemptible {
		instance.Scheduling = &compute.Scheduling{Preemptible: true}
	}
	if len(cfg.Tags) > 0 {
		instance.Tags = &compute.Tags{Items: cfg.Tags}
	}

	return instance
}
