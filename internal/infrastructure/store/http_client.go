// Package store implements the remote bill store over HTTP.
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Aurelio-One/p9/internal/application/port"
	"github.com/Aurelio-One/p9/internal/domain/bill"
)

// HTTPClient interface for testability
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the bill API. Non-2xx responses become errors whose
// message is "Erreur <code>", which the view surfaces verbatim.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	logger     *zap.Logger
}

// NewClient creates a store client for the given API base URL.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

// List fetches all bills in store order.
func (c *Client) List(ctx context.Context) ([]bill.Bill, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/bills", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return nil, err
	}

	var bills []bill.Bill
	if err := json.NewDecoder(resp.Body).Decode(&bills); err != nil {
		return nil, fmt.Errorf("failed to decode bill list: %w", err)
	}
	return bills, nil
}

// CreateFile uploads a receipt as multipart form data and returns the
// file URL and bill key assigned by the store.
func (c *Client) CreateFile(ctx context.Context, file port.File, ownerEmail string) (port.FileRef, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return port.FileRef{}, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return port.FileRef{}, fmt.Errorf("failed to write file part: %w", err)
	}
	if err := writer.WriteField("email", ownerEmail); err != nil {
		return port.FileRef{}, fmt.Errorf("failed to write email field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return port.FileRef{}, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bills", &body)
	if err != nil {
		return port.FileRef{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return port.FileRef{}, fmt.Errorf("failed to upload receipt: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return port.FileRef{}, err
	}

	var ref port.FileRef
	if err := json.NewDecoder(resp.Body).Decode(&ref); err != nil {
		return port.FileRef{}, fmt.Errorf("failed to decode upload response: %w", err)
	}

	c.logger.Debug("receipt uploaded",
		zap.String("key", ref.Key),
		zap.String("file_url", ref.FileURL))
	return ref, nil
}

// Update persists the assembled bill identified by payload.ID.
func (c *Client) Update(ctx context.Context, payload bill.Bill) (bill.Bill, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return bill.Bill{}, fmt.Errorf("failed to encode bill: %w", err)
	}

	url := fmt.Sprintf("%s/bills/%s", c.baseURL, payload.ID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(encoded))
	if err != nil {
		return bill.Bill{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return bill.Bill{}, fmt.Errorf("failed to update bill: %w", err)
	}
	defer resp.Body.Close()

	if err := c.checkStatus(resp); err != nil {
		return bill.Bill{}, err
	}

	var updated bill.Bill
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return bill.Bill{}, fmt.Errorf("failed to decode updated bill: %w", err)
	}
	return updated, nil
}

// checkStatus converts a non-2xx response into an error. The "Erreur
// <code>" message format is part of the contract with the view layer.
func (c *Client) checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	io.Copy(io.Discard, resp.Body)
	return fmt.Errorf("Erreur %d", resp.StatusCode)
}
