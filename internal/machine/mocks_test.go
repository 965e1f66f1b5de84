package machine

import (
	"context"
	"fmt"
	"sync"

	compute "google.golang.org/api/compute/v1"
)

// insertCall records the arguments of an InsertInstance call.
type insertCall struct {
	project  string
	zone     string
	instance *compute.Instance
}

// deleteCall records the arguments of a DeleteInstance call.
type deleteCall struct {
	project string
	zone    string
	name    string
}

// imageCall records the arguments of an ImageFromFamily call.
type imageCall struct {
	project string
	family  string
}

// mockComputeClient is a mock implementation of the computeClient
// interface for testing.
type mockComputeClient struct {
	mu sync.Mutex

	// Configurable behavior
	imageFromFamilyFunc func(ctx context.Context, project, family string) (*compute.Image, error)
	insertInstanceFunc  func(ctx context.Context, project, zone string, instance *compute.Instance) (*compute.Operation, error)
	deleteInstanceFunc  func(ctx context.Context, project, zone, name string) (*compute.Operation, error)
	getInstanceFunc     func(ctx context.Context, project, zone, name string) (*compute.Instance, error)
	listInstancesFunc   func(ctx context.Context, project, zone string) ([]*compute.Instance, error)
	zoneOperationFunc   func(ctx context.Context, project, zone, operation string) (*compute.Operation, error)

	// Call tracking
	imageFromFamilyCalls []imageCall
	insertInstanceCalls  []insertCall
	deleteInstanceCalls  []deleteCall
	getInstanceCalls     []string
	listInstancesCalls   int
	zoneOperationCalls   []string
}

// newMockComputeClient creates a mock compute client with default
// happy-path behavior: image resolution succeeds, insert/delete return
// an operation that is immediately DONE.
func newMockComputeClient() *mockComputeClient {
	m := &mockComputeClient{}

	m.imageFromFamilyFunc = func(ctx context.Context, project, family string) (*compute.Image, error) {
		return &compute.Image{
			Name:     family + "-v20260801",
			SelfLink: fmt.Sprintf("https://www.googleapis.com/compute/v1/projects/%s/global/images/%s-v20260801", project, family),
		}, nil
	}

	m.insertInstanceFunc = func(ctx context.Context, project, zone string, instance *compute.Instance) (*compute.Operation, error) {
		return &compute.Operation{Name: "operation-insert-1", Status: "RUNNING"}, nil
	}

	m.deleteInstanceFunc = func(ctx context.Context, project, zone, name string) (*compute.Operation, error) {
		return &compute.Operation{Name: "operation-delete-1", Status: "RUNNING"}, nil
	}

	m.getInstanceFunc = func(ctx context.Context, project, zone, name string) (*compute.Instance, error) {
		return &compute.Instance{Name: name, Status: "RUNNING"}, nil
	}

	m.listInstancesFunc = func(ctx context.Context, project, zone string) ([]*compute.Instance, error) {
		return nil, nil
	}

	m.zoneOperationFunc = func(ctx context.Context, project, zone, operation string) (*compute.Operation, error) {
		return &compute.Operation{Name: operation, Status: "DONE"}, nil
	}

	return m
}

func (m *mockComputeClient) ImageFromFamily(ctx context.Context, project, family string) (*compute.Image, error) {
	m.mu.Lock()
	m.imageFromFamilyCalls = append(m.imageFromFamilyCalls, imageCall{project: project, family: family})
	m.mu.Unlock()
	return m.imageFromFamilyFunc(ctx, project, family)
}

func (m *mockComputeClient) InsertInstance(ctx context.Context, project, zone string, instance *compute.Instance) (*compute.Operation, error) {
	m.mu.Lock()
	m.insertInstanceCalls = append(m.insertInstanceCalls, insertCall{project: project, zone: zone, instance: instance})
	m.mu.Unlock()
	return m.insertInstanceFunc(ctx, project, zone, instance)
}

func (m *mockComputeClient) DeleteInstance(ctx context.Context, project, zone, name string) (*compute.Operation, error) {
	m.mu.Lock()
	m.deleteInstanceCalls = append(m.deleteInstanceCalls, deleteCall{project: project, zone: zone, name: name})
	m.mu.Unlock()
	return m.deleteInstanceFunc(ctx, project, zone, name)
}

func (m *mockComputeClient) GetInstance(ctx context.Context, project, zone, name string) (*compute.Instance, error) {
	m.mu.Lock()
	m.getInstanceCalls = append(m.getInstanceCalls, name)
	m.mu.Unlock()
	return m.getInstanceFunc(ctx, project, zone, name)
}

func (m *mockComputeClient) ListInstances(ctx context.Context, project, zone string) ([]*compute.Instance, error) {
	m.mu.Lock()
	m.listInstancesCalls++
	m.mu.Unlock()
	return m.listInstancesFunc(ctx, project, zone)
}

func (m *mockComputeClient) ZoneOperation(ctx context.Context, project, zone, operation string) (*compute.Operation, error) {
	m.mu.Lock()
	m.zoneOperationCalls = append(m.zoneOperationCalls, operation)
	m.mu.Unlock()
	return m.zoneOperationFunc(ctx, project, zone, operation)
}
