package machine

import (
	"context"
	"errors"
	"fmt"
	"path"
	"time"

	compute "google.golang.org/api/compute/v1"
	"google.golang.org/api/googleapi"
)

// ErrInstanceNotFound indicates the named instance does not exist in
// the target project/zone.
var ErrInstanceNotFound = errors.New("instance not found")

// Info represents information about an instance.
type Info struct {
	Name        string    `json:"name" yaml:"name"`
	MachineType string    `json:"machineType" yaml:"machine_type"`
	Status      string    `json:"status" yaml:"status"`
	Zone        string    `json:"zone" yaml:"zone"`
	InternalIP  string    `json:"internalIP,omitempty" yaml:"internal_ip,omitempty"`
	ExternalIP  string    `json:"externalIP,omitempty" yaml:"external_ip,omitempty"`
	Preemptible bool      `json:"preemptible,omitempty" yaml:"preemptible,omitempty"`
	Created     time.Time `json:"created,omitempty" yaml:"created,omitempty"`
}

// List returns info for all instances in the target project/zone.
func (m *Manager) List(ctx context.Context) ([]Info, error) {
	m.logger.Info("listing instances")

	instances, err := m.compute.ListInstances(ctx, m.target.Project, m.target.Zone)
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}

	infos := make([]Info, 0, len(instances))
	for _, instance := range instances {
		infos = append(infos, instanceInfo(instance))
	}

	return infos, nil
}

// Describe returns info for a single named instance. A provider 404 is
// reported as ErrInstanceNotFound.
func (m *Manager) Describe(ctx context.Context, name string) (*Info, error) {
	m.logger.WithField("instance", name).Info("describing instance")

	instance, err := m.compute.GetInstance(ctx, m.target.Project, m.target.Zone, name)
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == 404 {
			return nil, fmt.Errorf("%w: %s in %s/%s", ErrInstanceNotFound, name, m.target.Project, m.target.Zone)
		}
		return nil, err
	}

	info := instanceInfo(instance)
	return &info, nil
}

// instanceInfo converts an API instance into the subset of fields this
// tool reports.
func instanceInfo(instance *compute.Instance) Info {
	info := Info{
		Name: instance.Name,
		// MachineType and Zone come back as full resource URLs
		MachineType: path.Base(instance.MachineType),
		Status:      instance.Status,
		Zone:        path.Base(instance.Zone),
	}

	if instance.Scheduling != nil {
		info.Preemptible = instance.Scheduling.Preemptible
	}

	if len(instance.NetworkInterfaces) > 0 {
		nic := instance.NetworkInterfaces[0]
		info.InternalIP = nic.NetworkIP
		if len(nic.AccessConfigs) > 0 {
			info.ExternalIP = nic.AccessConfigs[0].NatIP
		}
	}

	if instance.CreationTimestamp != "" {
		if created, err := time.Parse(time.RFC3339, instance.CreationTimestamp); err == nil {
			info.Created = created
		}
	}

	return info
}
