// Package productclient talks to the products service over HTTP. The checkout
// path depends on the Lookup interface only, so a slow or broken downstream
// never holds a database transaction open and tests need no network.
package productclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tokomart-be/internal/retry"
)

// Product is the slice of the catalog the orders service needs at checkout.
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type Lookup interface {
	GetMany(ctx context.Context, productIDs []string) ([]Product, error)
}

type client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) Lookup {
	return &client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *client) GetMany(ctx context.Context, productIDs []string) ([]Product, error) {
	return retry.Do(ctx, "productclient.GetMany", func(ctx context.Context) ([]Product, error) {
		return c.getMany(ctx, productIDs)
	})
}

func (c *client) getMany(ctx context.Context, productIDs []string) ([]Product, error) {
	body, err := json.Marshal(map[string]any{"productIds": productIDs})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/product/many", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("product service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("product service returned status %d", resp.StatusCode)
	}

	var products []Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("product service response not decodable: %w", err)
	}
	return products, nil
}
