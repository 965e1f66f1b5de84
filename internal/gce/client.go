// Package gce wraps the Compute Engine v1 API behind the small set of
// calls this tool needs.
package gce

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	compute "google.golang.org/api/compute/v1"
	"google.golang.org/api/option"
)

// Client wraps a compute/v1 service and provides the instance and
// image operations used by the machine package.
type Client struct {
	service *compute.Service
}

// NewClient builds a Compute Engine client authenticated with
// Application Default Credentials.
func NewClient(ctx context.Context) (*Client, error) {
	httpClient, err := google.DefaultClient(ctx, compute.ComputeScope)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain default credentials: %w", err)
	}

	service, err := compute.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create compute service: %w", err)
	}

	return &Client{service: service}, nil
}

// Service returns the underlying compute service for direct API
// access. This should be used sparingly; prefer the methods on Client.
func (c *Client) Service() *compute.Service {
	return c.service
}

// ImageFromFamily returns the latest non-deprecated image in a family.
func (c *Client) ImageFromFamily(ctx context.Context, project, family string) (*compute.Image, error) {
	return c.service.Images.GetFromFamily(project, family).Context(ctx).Do()
}

// InsertInstance issues an instances.insert request and returns the
// resulting zone operation.
func (c *Client) InsertInstance(ctx context.Context, project, zone string, instance *compute.Instance) (*compute.Operation, error) {
	return c.service.Instances.Insert(project, zone, instance).Context(ctx).Do()
}

// DeleteInstance issues an instances.delete request and returns the
// resulting zone operation.
func (c *Client) DeleteInstance(ctx context.Context, project, zone, name string) (*compute.Operation, error) {
	return c.service.Instances.Delete(project, zone, name).Context(ctx).Do()
}

// GetInstance retrieves a single instance.
func (c *Client) GetInstance(ctx context.Context, project, zone, name string) (*compute.Instance, error) {
	return c.service.Instances.Get(project, zone, name).Context(ctx).Do()
}

// ListInstances returns all instances in a zone, following pagination.
func (c *Client) ListInstances(ctx context.Context, project, zone string) ([]*compute.Instance, error) {
	var instances []*compute.Instance

	call := c.service.Instances.List(project, zone)
	err := call.Pages(ctx, func(page *compute.InstanceList) error {
		instances = append(instances, page.Items...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return instances, nil
}

// ZoneOperation retrieves the current state of a zone operation.
func (c *Client) ZoneOperation(ctx context.Context, project, zone, operation string) (*compute.Operation, error) {
	return c.service.ZoneOperations.Get(project, zone, operation).Context(ctx).Do()
}
