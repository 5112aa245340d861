// Package client is a small JSON-over-HTTP client for the supply-chain API.
// It carries the association fallback used by data-entry tooling: the
// dedicated associate endpoint is tried first, and on any non-success
// response the material's supplier list is patched directly.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fontaine-sante/scos/models"
)

// Client talks to a running supply-chain API server.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// New returns a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL, token string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Token:      token,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Error string `json:"error"`
		}
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if err := json.Unmarshal(raw, &apiErr); err != nil || apiErr.Error == "" {
			apiErr.Error = strings.TrimSpace(string(raw))
		}
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Error}
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// GetMaterial fetches a single raw material by ID.
func (c *Client) GetMaterial(ctx context.Context, id string) (*models.RawMaterial, error) {
	var m models.RawMaterial
	if err := c.do(ctx, http.MethodGet, "/api/v1/materials/"+url.PathEscape(id), nil, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// AssociateSuppliers sets the material's supplier list to exactly
// supplierIDs. Callers pass the full desired set, not a delta.
//
// The dedicated associate endpoint is the primary path. On any non-success
// response the material is patched directly with the same list; if the
// patch also fails, its error is returned and no retry is attempted.
func (c *Client) AssociateSuppliers(ctx context.Context, materialID string, supplierIDs []string) (*models.RawMaterial, error) {
	body := map[string]interface{}{
		"materialId":  materialID,
		"supplierIds": supplierIDs,
	}
	var resp struct {
		Material models.RawMaterial `json:"material"`
	}
	err := c.do(ctx, http.MethodPost, "/api/v1/materials/associate", body, &resp)
	if err == nil {
		return &resp.Material, nil
	}

	patch := map[string]interface{}{"suppliers": supplierIDs}
	var m models.RawMaterial
	if err := c.do(ctx, http.MethodPut, "/api/v1/materials?id="+url.QueryEscape(materialID), patch, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateMaterial applies a partial patch to a material and returns the
// updated record.
func (c *Client) UpdateMaterial(ctx context.Context, id string, patch map[string]interface{}) (*models.RawMaterial, error) {
	var m models.RawMaterial
	if err := c.do(ctx, http.MethodPut, "/api/v1/materials?id="+url.QueryEscape(id), patch, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// SyncWarehouse asks the server to grow the warehouse's supplier and
// material associations to cover everything currently known.
func (c *Client) SyncWarehouse(ctx context.Context, warehouseID string) (*models.Warehouse, bool, error) {
	var resp struct {
		Updated   bool             `json:"updated"`
		Warehouse models.Warehouse `json:"warehouse"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/warehouses/"+url.PathEscape(warehouseID)+"/sync", nil, &resp); err != nil {
		return nil, false, err
	}
	return &resp.Warehouse, resp.Updated, nil
}
