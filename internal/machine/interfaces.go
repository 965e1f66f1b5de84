package machine

import (
	"context"

	compute "google.golang.org/api/compute/v1"
)

// computeClient defines the Compute Engine operations needed for
// instance management. This wraps operations from *gce.Client to allow
// for testing.
//
// In production, this is satisfied by *gce.Client.
// In tests, this is satisfied by mock implementations.
type computeClient interface {
	// ImageFromFamily returns the latest non-deprecated image in a family
	ImageFromFamily(ctx context.Context, project, family string) (*compute.Image, error)

	// InsertInstance issues an instances.insert request
	InsertInstance(ctx context.Context, project, zone string, instance *compute.Instance) (*compute.Operation, error)

	// DeleteInstance issues an instances.delete request
	DeleteInstance(ctx context.Context, project, zone, name string) (*compute.Operation, error)

	// GetInstance retrieves a single instance
	GetInstance(ctx context.Context, project, zone, name string) (*compute.Instance, error)

	// ListInstances returns all instances in a zone
	ListInstances(ctx context.Context, project, zone string) ([]*compute.Instance, error)

	// ZoneOperation retrieves the current state of a zone operation
	ZoneOperation(ctx context.Context, project, zone, operation string) (*compute.Operation, error)
}
