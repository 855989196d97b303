// Package sheet talks to the hosted spreadsheet API that stores the reports.
//
// The API exposes the sheet as a flat table: GET lists every row, POST
// appends rows given under a "data" key, PATCH and DELETE address a row by
// its ID column.
package sheet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/example/report-tracker/pkg/report"
)

// ErrNoRows is returned when an update or delete matched no row
var ErrNoRows = errors.New("no matching row")

// APIError is a non-2xx answer from the API
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("sheet api: %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("sheet api: %d %s", e.StatusCode, e.Message)
}

// Client is a spreadsheet API client bound to one sheet
type Client struct {
	baseURL string
	http    *http.Client
	log     logrus.FieldLogger
}

// New returns a client for the sheet at baseURL
func New(baseURL string, timeout time.Duration, log logrus.FieldLogger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// List fetches every report row
func (c *Client) List(ctx context.Context) ([]report.Report, error) {
	var reports []report.Report
	if err := c.do(ctx, http.MethodGet, "", nil, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// Create appends r as a new row. The sheet assigns the ID.
func (c *Client) Create(ctx context.Context, r report.Report) error {
	var resp struct {
		Created int `json:"created"`
	}
	body := map[string][]report.Report{"data": {r}}
	if err := c.do(ctx, http.MethodPost, "", body, &resp); err != nil {
		return err
	}
	if resp.Created == 0 {
		return errors.New("sheet api: no row created")
	}
	return nil
}

// Update overwrites the given columns on the row with the given id
func (c *Client) Update(ctx context.Context, id string, values map[string]string) error {
	var resp struct {
		Updated int `json:"updated"`
	}
	body := map[string]map[string]string{"data": values}
	if err := c.do(ctx, http.MethodPatch, rowPath(id), body, &resp); err != nil {
		return err
	}
	if resp.Updated == 0 {
		return fmt.Errorf("update %s: %w", id, ErrNoRows)
	}
	return nil
}

// Delete removes the row with the given id
func (c *Client) Delete(ctx context.Context, id string) error {
	var resp struct {
		Deleted int `json:"deleted"`
	}
	if err := c.do(ctx, http.MethodDelete, rowPath(id), nil, &resp); err != nil {
		return err
	}
	if resp.Deleted == 0 {
		return fmt.Errorf("delete %s: %w", id, ErrNoRows)
	}
	return nil
}

func rowPath(id string) string {
	return "/ID/" + url.PathEscape(id)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.log.WithFields(logrus.Fields{
		"request_id": reqID,
		"method":     method,
		"path":       path,
	})
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("sheet request failed")
		return fmt.Errorf("%s %s: %w", method, c.baseURL+path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	log = log.WithFields(logrus.Fields{"status": resp.StatusCode, "elapsed": time.Since(start)})

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
		log.WithError(apiErr).Warn("sheet request rejected")
		return apiErr
	}
	log.Debug("sheet request done")

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func errorMessage(data []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return strings.TrimSpace(string(data))
}
