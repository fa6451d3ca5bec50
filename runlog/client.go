package runlog

import (
	"context"
	"fmt"

	"github.com/calvinmclean/babyapi"
)

type Client struct {
	client *babyapi.Client[*Run]
}

func NewClient(addr string) *Client {
	return &Client{client: babyapi.NewClient[*Run](addr, "/runs")}
}

// Upload stores r and returns its ID
func (c *Client) Upload(ctx context.Context, r *Run) (string, error) {
	resp, err := c.client.Post(ctx, r)
	if err != nil {
		return "", fmt.Errorf("error uploading run: %w", err)
	}
	return resp.Data.GetID(), nil
}

// Get fetches one run
func (c *Client) Get(ctx context.Context, id string) (*Run, error) {
	resp, err := c.client.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error getting run %q: %w", id, err)
	}
	return resp.Data, nil
}

// List fetches every stored run
func (c *Client) List(ctx context.Context) ([]*Run, error) {
	resp, err := c.client.Search(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("error listing runs: %w", err)
	}
	return resp.Data.Items, nil
}
