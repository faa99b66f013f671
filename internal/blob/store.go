// Package blob wraps Azure Blob Storage access for the sample application.
package blob

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// Item is one blob in the container.
type Item struct {
	Name         string    `json:"name"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	ContentType  string    `json:"content_type,omitempty"`
}

// Store is the container access surface the sample app serves from.
// Implemented by Client against Azure and by a fake in tests.
type Store interface {
	// Ping verifies the container is reachable with the current
	// credential.
	Ping(ctx context.Context) error

	// List returns all blobs in the container.
	List(ctx context.Context) ([]Item, error)

	// Upload writes content under the given blob name, overwriting any
	// existing blob.
	Upload(ctx context.Context, name string, content []byte) error
}

// Client implements Store against an Azure Storage container.
type Client struct {
	client    *azblob.Client
	container string
}

// New creates a Store for one container of the given account. The
// credential is typically DefaultAzureCredential, which picks up workload
// identity inside the cluster.
func New(accountName, container string, cred azcore.TokenCredential) (*Client, error) {
	serviceURL := fmt.Sprintf("https://%s.blob.core.windows.net/", accountName)
	client, err := azblob.NewClient(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create blob client for %s: %w", serviceURL, err)
	}
	return &Client{client: client, container: container}, nil
}

// Ping implements Store.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.client.ServiceClient().NewContainerClient(c.container).GetProperties(ctx, nil)
	if err != nil {
		return fmt.Errorf("container %s not reachable: %w", c.container, err)
	}
	return nil
}

// List implements Store.
func (c *Client) List(ctx context.Context) ([]Item, error) {
	var items []Item
	pager := c.client.NewListBlobsFlatPager(c.container, nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing blobs in %s: %w", c.container, err)
		}
		for _, b := range page.Segment.BlobItems {
			item := Item{}
			if b.Name != nil {
				item.Name = *b.Name
			}
			if b.Properties != nil {
				if b.Properties.ContentLength != nil {
					item.Size = *b.Properties.ContentLength
				}
				if b.Properties.LastModified != nil {
					item.LastModified = *b.Properties.LastModified
				}
				if b.Properties.ContentType != nil {
					item.ContentType = *b.Properties.ContentType
				}
			}
			items = append(items, item)
		}
	}
	return items, nil
}

// Upload implements Store.
func (c *Client) Upload(ctx context.Context, name string, content []byte) error {
	_, err := c.client.UploadBuffer(ctx, c.container, name, content, nil)
	if err != nil {
		return fmt.Errorf("uploading %s to %s: %w", name, c.container, err)
	}
	return nil
}
