package machine

import (
	"context"
	"errors"
	"testing"

	compute "google.golang.org/api/compute/v1"
)

func TestWaitForOperation_ImmediateDone(t *testing.T) {
	mock := newMockComputeClient()
	m := newManagerWithDeps(mock, testLogger(), testTarget())

	if err := m.waitForOperation(context.Background(), "operation-1"); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if len(mock.zoneOperationCalls) != 1 {
		t.Errorf("expected a single poll for a DONE operation, got %d", len(mock.zoneOperationCalls))
	}
}

func TestWaitForOperation_PollsUntilDone(t *testing.T) {
	polls := 0
	mock := newMockComputeClient()
	mock.zoneOperationFunc = func(ctx context.Context, project, zone, operation string) (*compute.Operation, error) {
		polls++
		if polls < 3 {
			return &compute.Operation{Name: operation, Status: "RUNNING"}, nil
		}
		return &compute.Operation{Name: operation, Status: "DONE"}, nil
	}
	m := newManagerWithDeps(mock, testLogger(), testTarget())

	if err := m.waitForOperation(context.Background(), "operation-1"); err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if polls != 3 {
		t.Errorf("expected 3 polls, got %d", polls)
	}
}

func TestWaitForOperation_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	mock := newMockComputeClient()
	mock.zoneOperationFunc = func(ctx context.Context, project, zone, operation string) (*compute.Operation, error) {
		// Cancel while the operation is still pending
		cancel()
		return &compute.Operation{Name: operation, Status: "RUNNING"}, nil
	}
	m := newManagerWithDeps(mock, testLogger(), testTarget())

	err := m.waitForOperation(ctx, "operation-1")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got: %v", err)
	}
}

func TestWaitForOperation_PollFails(t *testing.T) {
	pollErr := errors.New("googleapi: Error 500: backend error")

	mock := newMockComputeClient()
	mock.zoneOperationFunc = func(ctx context.Context, project, zone, operation string) (*compute.Operation, error) {
		return nil, pollErr
	}
	m := newManagerWithDeps(mock, testLogger(), testTarget())

	err := m.waitForOperation(context.Background(), "operation-1")
	if !errors.Is(err, pollErr) {
		t.Errorf("expected the poll error surfaced, got: %v", err)
	}
}

func TestOperationErrorString(t *testing.T) {
	tests := []struct {
		name     string
		opErr    *compute.OperationError
		expected string
	}{
		{
			name:     "empty",
			opErr:    &compute.OperationError{},
			expected: "unknown error",
		},
		{
			name: "single error with code",
			opErr: &compute.OperationError{
				Errors: []*compute.OperationErrorErrors{
					{Code: "QUOTA_EXCEEDED", Message: "Quota 'CPUS' exceeded"},
				},
			},
			expected: "QUOTA_EXCEEDED: Quota 'CPUS' exceeded",
		},
		{
			name: "multiple errors",
			opErr: &compute.OperationError{
				Errors: []*compute.OperationErrorErrors{
					{Code: "A", Message: "first"},
					{Message: "second"},
				},
			},
			expected: "A: first; second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := operationErrorString(tt.opErr); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
