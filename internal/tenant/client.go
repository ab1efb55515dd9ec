package tenant

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Directory resolves a tenant to its owner. Other services consult it over
// HTTP before allowing admin mutations.
type Directory interface {
	GetOwner(ctx context.Context, tenantID, bearerToken string) (string, error)
}

type client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a Directory talking to the tenant service at baseURL.
func NewClient(baseURL string) Directory {
	return &client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *client) GetOwner(ctx context.Context, tenantID, bearerToken string) (string, error) {
	url := fmt.Sprintf("%s/tenant/%s", c.baseURL, tenantID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("tenant directory request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tenant directory returned status %d", resp.StatusCode)
	}

	var body struct {
		Tenants struct {
			OwnerID string `json:"owner_id"`
		} `json:"tenants"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("tenant directory response not decodable: %w", err)
	}

	return body.Tenants.OwnerID, nil
}
